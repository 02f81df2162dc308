package mock

import (
	webscrape "github.com/codermillat/WebScrape-sub000"
)

var _ webscrape.Walker = (*Walker)(nil)

// Walker is a mock implementation of webscrape.Walker.
type Walker struct {
	WalkFn func(html string, baseURL string, opts webscrape.WalkOptions) (*webscrape.ExtractResult, error)
}

func (w *Walker) Walk(html string, baseURL string, opts webscrape.WalkOptions) (*webscrape.ExtractResult, error) {
	return w.WalkFn(html, baseURL, opts)
}

var _ webscrape.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of webscrape.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*webscrape.MainContent, error)
}

func (e *ContentExtractor) Extract(html string) (*webscrape.MainContent, error) {
	return e.ExtractFn(html)
}

var _ webscrape.Converter = (*Converter)(nil)

// Converter is a mock implementation of webscrape.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
