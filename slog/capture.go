package slog

import (
	"context"
	"log/slog"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Ensure LoggingCaptureService implements webscrape.CaptureService.
var _ webscrape.CaptureService = (*LoggingCaptureService)(nil)

// LoggingCaptureService wraps a CaptureService with logging on the write
// path. Reads delegate silently.
type LoggingCaptureService struct {
	next   webscrape.CaptureService
	logger *slog.Logger
}

// NewLoggingCaptureService creates a new LoggingCaptureService.
func NewLoggingCaptureService(next webscrape.CaptureService, logger *slog.Logger) *LoggingCaptureService {
	return &LoggingCaptureService{next: next, logger: logger}
}

// AddCapture delegates to the wrapped service and logs the outcome.
func (s *LoggingCaptureService) AddCapture(ctx context.Context, url, title, label, text string, opts webscrape.AddCaptureOptions) (result *webscrape.AddCaptureResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"label", label,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs, "pageKey", result.PageKey, "duplicate", result.Duplicate)
		}
		s.logger.Info("add capture", attrs...)
	}(time.Now())
	return s.next.AddCapture(ctx, url, title, label, text, opts)
}

// FindPages delegates to the wrapped service.
func (s *LoggingCaptureService) FindPages(ctx context.Context) ([]*webscrape.Page, error) {
	return s.next.FindPages(ctx)
}

// FindPageByKey delegates to the wrapped service.
func (s *LoggingCaptureService) FindPageByKey(ctx context.Context, key string) (*webscrape.Page, error) {
	return s.next.FindPageByKey(ctx, key)
}

// CaptureBody delegates to the wrapped service.
func (s *LoggingCaptureService) CaptureBody(ctx context.Context, captureID, kind string) (string, error) {
	return s.next.CaptureBody(ctx, captureID, kind)
}

// SetSelected delegates to the wrapped service.
func (s *LoggingCaptureService) SetSelected(ctx context.Context, captureID string, selected bool) error {
	return s.next.SetSelected(ctx, captureID, selected)
}

// CombineSelected delegates to the wrapped service.
func (s *LoggingCaptureService) CombineSelected(ctx context.Context, pageKey string) (string, error) {
	return s.next.CombineSelected(ctx, pageKey)
}

// DeleteCapture delegates to the wrapped service and logs the deletion.
func (s *LoggingCaptureService) DeleteCapture(ctx context.Context, captureID string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete capture",
			"captureId", captureID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteCapture(ctx, captureID)
}

// DeletePage delegates to the wrapped service and logs the deletion.
func (s *LoggingCaptureService) DeletePage(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete page",
			"pageKey", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePage(ctx, key)
}
