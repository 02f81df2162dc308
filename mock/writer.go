package mock

import (
	"context"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

var _ webscrape.FileWriter = (*FileWriter)(nil)

// FileWriter is a mock implementation of webscrape.FileWriter.
type FileWriter struct {
	WriteFileFn func(ctx context.Context, req webscrape.FileRequest) (*webscrape.FileResponse, error)
}

func (w *FileWriter) WriteFile(ctx context.Context, req webscrape.FileRequest) (*webscrape.FileResponse, error) {
	return w.WriteFileFn(ctx, req)
}

var _ webscrape.PDFExtractor = (*PDFExtractor)(nil)

// PDFExtractor is a mock implementation of webscrape.PDFExtractor.
type PDFExtractor struct {
	ExtractPDFTextFn func(ctx context.Context, url string) (*webscrape.PDFResponse, error)
}

func (e *PDFExtractor) ExtractPDFText(ctx context.Context, url string) (*webscrape.PDFResponse, error) {
	return e.ExtractPDFTextFn(ctx, url)
}
