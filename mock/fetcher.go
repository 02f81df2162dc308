// Package mock provides function-field mock implementations of the
// webscrape service interfaces for testing.
package mock

import (
	"context"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

var _ webscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
