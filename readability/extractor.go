// Package readability wraps go-readability as the second fallback
// content extractor in the extraction chain.
package readability

import (
	"strings"

	webscrape "github.com/codermillat/WebScrape-sub000"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webscrape.ContentExtractor at compile time.
var _ webscrape.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*webscrape.MainContent, error) {
	if rawHTML == "" {
		return nil, webscrape.Errorf(webscrape.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &webscrape.MainContent{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
