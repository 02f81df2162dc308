package main

import (
	"fmt"
	"sync"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/pipeline"
	"golang.org/x/sync/errgroup"
)

// captureOutcome is the result of capturing one URL.
type captureOutcome struct {
	url    string
	result *webscrape.AddCaptureResult
	meta   *pipeline.ExtractMeta
	err    error
}

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	outcomes := make([]captureOutcome, len(c.URLs))

	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)

	// The pipeline and capture store are safe for concurrent use; output
	// order is fixed by index so results print deterministically.
	var mu sync.Mutex
	for i, url := range c.URLs {
		i, url := i, url
		g.Go(func() error {
			outcome := captureOutcome{url: url}

			resp, err := deps.Pipeline.Extract(gctx, pipeline.ExtractRequest{
				Action:   "pipelineExtract",
				URL:      url,
				Extended: c.Extended,
				Dynamic:  c.Dynamic,
			})
			if err != nil {
				outcome.err = err
			} else {
				outcome.meta = resp.Meta
				outcome.result, outcome.err = deps.Captures.AddCapture(
					gctx, url, resp.Meta.Title, c.Label, resp.StructuredCandidate,
					webscrape.AddCaptureOptions{Force: c.Force, LLMBody: resp.LLMBody},
				)
			}

			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed int
	for _, o := range outcomes {
		switch {
		case o.err != nil:
			failed++
			fmt.Fprintf(deps.Stderr, "FAIL  %s: %s\n", pipeline.TruncateURL(o.url, 60), webscrape.ErrorMessage(o.err))
		case o.result.Duplicate:
			fmt.Fprintf(deps.Stdout, "DUP   %s (already captured)\n", pipeline.TruncateURL(o.url, 60))
		default:
			fmt.Fprintf(deps.Stdout, "OK    %s  %s  %s  tables=%d feeLines=%d\n",
				pipeline.TruncateURL(o.url, 60), o.result.CaptureID,
				pipeline.FormatBytes(o.meta.Length), o.meta.Tables, o.meta.FeeLines)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d captures failed", failed, len(c.URLs))
	}
	return nil
}
