package mock

import (
	"context"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

var _ webscrape.CaptureService = (*CaptureService)(nil)

// CaptureService is a mock implementation of webscrape.CaptureService.
type CaptureService struct {
	AddCaptureFn      func(ctx context.Context, url, title, label, text string, opts webscrape.AddCaptureOptions) (*webscrape.AddCaptureResult, error)
	FindPagesFn       func(ctx context.Context) ([]*webscrape.Page, error)
	FindPageByKeyFn   func(ctx context.Context, key string) (*webscrape.Page, error)
	CaptureBodyFn     func(ctx context.Context, captureID, kind string) (string, error)
	SetSelectedFn     func(ctx context.Context, captureID string, selected bool) error
	CombineSelectedFn func(ctx context.Context, pageKey string) (string, error)
	DeleteCaptureFn   func(ctx context.Context, captureID string) error
	DeletePageFn      func(ctx context.Context, key string) error
}

func (s *CaptureService) AddCapture(ctx context.Context, url, title, label, text string, opts webscrape.AddCaptureOptions) (*webscrape.AddCaptureResult, error) {
	return s.AddCaptureFn(ctx, url, title, label, text, opts)
}

func (s *CaptureService) FindPages(ctx context.Context) ([]*webscrape.Page, error) {
	return s.FindPagesFn(ctx)
}

func (s *CaptureService) FindPageByKey(ctx context.Context, key string) (*webscrape.Page, error) {
	return s.FindPageByKeyFn(ctx, key)
}

func (s *CaptureService) CaptureBody(ctx context.Context, captureID, kind string) (string, error) {
	return s.CaptureBodyFn(ctx, captureID, kind)
}

func (s *CaptureService) SetSelected(ctx context.Context, captureID string, selected bool) error {
	return s.SetSelectedFn(ctx, captureID, selected)
}

func (s *CaptureService) CombineSelected(ctx context.Context, pageKey string) (string, error) {
	return s.CombineSelectedFn(ctx, pageKey)
}

func (s *CaptureService) DeleteCapture(ctx context.Context, captureID string) error {
	return s.DeleteCaptureFn(ctx, captureID)
}

func (s *CaptureService) DeletePage(ctx context.Context, key string) error {
	return s.DeletePageFn(ctx, key)
}
