package main

import (
	"fmt"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Run executes the select command.
func (c *SelectCmd) Run(deps *Dependencies) error {
	selected := !c.Off
	if err := deps.Captures.SetSelected(deps.Ctx, c.CaptureID, selected); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
		return err
	}

	if selected {
		fmt.Fprintf(deps.Stdout, "Selected %s\n", c.CaptureID)
	} else {
		fmt.Fprintf(deps.Stdout, "Unselected %s\n", c.CaptureID)
	}
	return nil
}
