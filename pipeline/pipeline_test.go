package pipeline_test

import (
	"context"
	"errors"
	"testing"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/codermillat/WebScrape-sub000/goquery"
	"github.com/codermillat/WebScrape-sub000/mock"
	"github.com/codermillat/WebScrape-sub000/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feePageHTML = `<!DOCTYPE html>
<html>
<head><title>Fee Structure</title></head>
<body>
<main>
<h1>Fee Structure 2026</h1>
<p>All fees are per academic year.</p>
<table>
<caption>Fee Structure</caption>
<tr><th>Programme</th><th>Fee</th></tr>
<tr><td>B.Tech</td><td>₹1,20,000/year</td></tr>
</table>
</main>
</body>
</html>`

func newPipeline(fetcher webscrape.Fetcher) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Allowlist:   webscrape.NewAllowlist([]string{"example.edu"}),
		Fetcher:     fetcher,
		Walker:      goquery.NewWalker(),
		RetryDelays: []time.Duration{time.Millisecond},
	}
}

func TestPipeline_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts a fee page end to end", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return feePageHTML, nil
			},
		})

		resp, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			Action: "pipelineExtract",
			URL:    "https://example.edu/fees",
		})

		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Equal(t, "Fee Structure", resp.Meta.Title)
		assert.Equal(t, 1, resp.Meta.Tables)
		assert.Equal(t, []string{"B.Tech — ₹1,20,000/year"}, resp.Extract.Fees)
		assert.Contains(t, resp.StructuredCandidate, "H1: Fee Structure 2026")
		assert.Contains(t, resp.StructuredCandidate, "FEES")
		assert.NotEmpty(t, resp.ChunkPromptsPreview)
		assert.Contains(t, resp.StructuredPromptExample, "Source: https://example.edu/fees")
	})

	t.Run("rejects non-allowlisted domains before fetching", func(t *testing.T) {
		t.Parallel()

		fetched := false
		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = true
				return feePageHTML, nil
			},
		})

		_, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL: "https://evil.com/fees",
		})

		require.Error(t, err)
		assert.Equal(t, webscrape.EFORBIDDEN, webscrape.ErrorCode(err))
		assert.False(t, fetched)
	})

	t.Run("retries fetch failures", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				attempts++
				if attempts < 2 {
					return "", errors.New("connection reset")
				}
				return feePageHTML, nil
			},
		})

		resp, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL: "https://example.edu/fees",
		})

		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Equal(t, 2, attempts)
	})

	t.Run("falls back to content extractors on empty walks", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body></body></html>", nil
			},
		})
		p.Fallbacks = []webscrape.ContentExtractor{
			&mock.ContentExtractor{
				ExtractFn: func(html string) (*webscrape.MainContent, error) {
					return &webscrape.MainContent{
						Title:       "Recovered",
						ContentHTML: "<p>recovered paragraph text</p>",
					}, nil
				},
			},
		}

		resp, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL: "https://example.edu/empty",
		})

		require.NoError(t, err)
		assert.Contains(t, resp.Extract.Base, "recovered paragraph text")
	})

	t.Run("reports total extraction failure", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body></body></html>", nil
			},
		})

		_, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL: "https://example.edu/empty",
		})

		require.Error(t, err)
		assert.Equal(t, webscrape.ENOTFOUND, webscrape.ErrorCode(err))
	})

	t.Run("merges extended sweep pages without duplicates", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return feePageHTML, nil
			},
		})
		p.Links = &mock.LinkSweeper{
			SweepExtendedFn: func(ctx context.Context, pageHTML, baseURL string) ([]string, error) {
				return []string{
					`<html><body><p>All fees are per academic year.</p><p>Hostel fee is 90000 per year.</p></body></html>`,
				}, nil
			},
		}

		resp, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL:      "https://example.edu/fees",
			Extended: true,
		})

		require.NoError(t, err)
		assert.True(t, resp.Meta.Extended)
		assert.Equal(t, 1, resp.Meta.ExtraPagesCount)
		assert.Contains(t, resp.Extract.ExtraPagesMerged, "Hostel fee is 90000 per year.")
		assert.NotContains(t, resp.Extract.ExtraPagesMerged, "All fees are per academic year.")
	})

	t.Run("link sweep failure degrades to base result", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return feePageHTML, nil
			},
		})
		p.Links = &mock.LinkSweeper{
			SweepExtendedFn: func(ctx context.Context, pageHTML, baseURL string) ([]string, error) {
				return nil, errors.New("network down")
			},
		}

		resp, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL:      "https://example.edu/fees",
			Extended: true,
		})

		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Empty(t, resp.Extract.ExtraPagesMerged)
	})

	t.Run("delegates pdf urls to the pdf boundary", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetch should not be called for pdf urls")
				return "", nil
			},
		})
		p.PDF = &mock.PDFExtractor{
			ExtractPDFTextFn: func(ctx context.Context, url string) (*webscrape.PDFResponse, error) {
				return &webscrape.PDFResponse{
					OK:   true,
					Text: "-- Page 1 --\nProspectus 2026\n-- Page 2 --\nFee schedule inside",
				}, nil
			},
		}

		resp, err := p.Extract(context.Background(), pipeline.ExtractRequest{
			URL: "https://example.edu/prospectus.pdf",
		})

		require.NoError(t, err)
		assert.Contains(t, resp.Extract.Base, "Prospectus 2026")
		assert.Contains(t, resp.Extract.Base, "Fee schedule inside")
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://a.edu", pipeline.TruncateURL("https://a.edu", 20))
	assert.Equal(t, "...example.edu/fees", pipeline.TruncateURL("https://www.example.edu/fees", 19))
	assert.Equal(t, "", pipeline.TruncateURL("https://a.edu", 0))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", pipeline.FormatBytes(512))
	assert.Equal(t, "2.0 KB", pipeline.FormatBytes(2048))
	assert.Equal(t, "1.5 MB", pipeline.FormatBytes(1572864))
}
