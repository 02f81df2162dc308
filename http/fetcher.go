// Package http provides HTTP-based implementations of webscrape.Fetcher and
// webscrape.LinkSweeper for static pages that don't require JavaScript
// rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with webscrape.DefaultLinkSweepTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// maxBodyBytes bounds a fetched body to keep pathological pages from
// exhausting memory.
const maxBodyBytes = 8 << 20

// Ensure Fetcher implements webscrape.Fetcher at compile time.
var _ webscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Sweeper's browser, this does not execute JavaScript and is
// suitable for server-rendered pages only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Non-HTML content
// types are rejected.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	if !isHTMLContentType(resp.Header.Get("Content-Type")) {
		return "", webscrape.Errorf(webscrape.EINVALID, "non-HTML content type %q for %s", resp.Header.Get("Content-Type"), url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTMLContentType accepts text/html and application/xhtml+xml, plus a
// missing header (some servers omit it for HTML).
func isHTMLContentType(ct string) bool {
	if ct == "" {
		return true
	}
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "xhtml")
}
