package main

import (
	"fmt"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	if c.Key != "" {
		return c.listPage(deps, c.Key)
	}

	pages, err := deps.Captures.FindPages(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No captures found. Use 'webscrape capture' to create one.")
		return nil
	}

	for _, p := range pages {
		selected := 0
		for _, cap := range p.Captures {
			if cap.Selected {
				selected++
			}
		}
		fmt.Fprintf(deps.Stdout, "%s  %q  captures=%d selected=%d  updated=%s\n",
			p.Key, p.Title, len(p.Captures), selected, p.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// listPage prints one page with its captures.
func (c *ListCmd) listPage(deps *Dependencies, key string) error {
	page, err := deps.Captures.FindPageByKey(deps.Ctx, key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  %q  %s\n", page.Key, page.Title, page.URL)
	for _, cap := range page.Captures {
		mark := " "
		if cap.Selected {
			mark = "*"
		}
		fmt.Fprintf(deps.Stdout, "  [%s] %s  %q  %d bytes  %s\n",
			mark, cap.ID, cap.Label, cap.Length, cap.Timestamp.Format("2006-01-02 15:04"))
		if c.Full && cap.Preview != "" {
			fmt.Fprintf(deps.Stdout, "      %s\n", cap.Preview)
		}
	}

	return nil
}
