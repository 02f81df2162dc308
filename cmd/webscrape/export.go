package main

import (
	"fmt"
	"strings"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Run executes the export command: combine the page's selected captures,
// chunk the text, wrap each chunk in the structuring prompt, and write the
// files through the download boundary.
func (c *ExportCmd) Run(deps *Dependencies) error {
	page, err := deps.Captures.FindPageByKey(deps.Ctx, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
		return err
	}

	combined, err := deps.Captures.CombineSelected(deps.Ctx, c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webscrape.ErrorMessage(err))
		return err
	}
	if strings.TrimSpace(combined) == "" {
		return fmt.Errorf("no selected captures for page %q", c.Key)
	}

	chunks := webscrape.ChunkText(combined, webscrape.ChunkOptions{
		MaxChunkSize: c.MaxChunkSize,
		MinChunkSize: c.MinChunkSize,
	})

	base := exportBasename(c.Key)
	for i, chunk := range chunks {
		text := chunk
		if !c.Raw {
			text = webscrape.BuildStructuredPrompt(page.Title, page.URL, chunk)
		}

		filename := fmt.Sprintf("%s-%02d.txt", base, i+1)
		resp, err := deps.Writer.WriteFile(deps.Ctx, webscrape.FileRequest{
			Filename: filename,
			Text:     text,
		})
		if err != nil {
			return err
		}
		if !resp.OK {
			return fmt.Errorf("failed to write %s: %s", filename, resp.Error)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes)\n", filename, len(text))
	}

	fmt.Fprintf(deps.Stdout, "Exported %d chunk(s) for %s\n", len(chunks), c.Key)
	return nil
}

// exportBasename turns a page key into a filename-safe base.
func exportBasename(key string) string {
	base := strings.NewReplacer("/", "-", ".", "-", ":", "-").Replace(key)
	return strings.Trim(base, "-")
}
