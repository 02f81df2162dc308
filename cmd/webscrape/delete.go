package main

import (
	"fmt"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	switch {
	case c.Capture != "":
		if err := deps.Captures.DeleteCapture(deps.Ctx, c.Capture); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted capture %s\n", c.Capture)
		return nil

	case c.Page != "":
		if err := deps.Captures.DeletePage(deps.Ctx, c.Page); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted page %s\n", c.Page)
		return nil

	default:
		return fmt.Errorf("specify --capture <id> or --page <key>")
	}
}
