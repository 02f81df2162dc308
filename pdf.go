package webscrape

import (
	"context"
	"regexp"
	"strings"
)

// PDF extraction crosses a message-passing boundary to an external
// collaborator; the core never decodes PDF binaries itself.

// PDFRequest is the message sent to the PDF collaborator.
type PDFRequest struct {
	Action string `json:"action"` // always "extractPdfText"
	URL    string `json:"url"`
}

// PDFResponse is the collaborator's reply. Text is page-delimited with
// "-- Page {n} --" markers.
type PDFResponse struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// PDFExtractor extracts text from a PDF URL via the external collaborator.
type PDFExtractor interface {
	ExtractPDFText(ctx context.Context, url string) (*PDFResponse, error)
}

var pdfPageMarkerRe = regexp.MustCompile(`(?m)^-- Page \d+ --$`)

// IsPDFURL reports whether the URL path ends in .pdf.
func IsPDFURL(rawURL string) bool {
	u := strings.ToLower(rawURL)
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.HasSuffix(u, ".pdf")
}

// SplitPDFPages splits collaborator text on its page markers, returning
// trimmed per-page text with empty pages dropped.
func SplitPDFPages(text string) []string {
	parts := pdfPageMarkerRe.Split(text, -1)
	pages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			pages = append(pages, p)
		}
	}
	return pages
}
