package mock

import (
	"context"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

var _ webscrape.Sweeper = (*Sweeper)(nil)

// Sweeper is a mock implementation of webscrape.Sweeper.
type Sweeper struct {
	SweepFn func(ctx context.Context, url string, cfg webscrape.SweepConfig) (*webscrape.SweepResult, error)
	CloseFn func() error
}

func (s *Sweeper) Sweep(ctx context.Context, url string, cfg webscrape.SweepConfig) (*webscrape.SweepResult, error) {
	return s.SweepFn(ctx, url, cfg)
}

func (s *Sweeper) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

var _ webscrape.LinkSweeper = (*LinkSweeper)(nil)

// LinkSweeper is a mock implementation of webscrape.LinkSweeper.
type LinkSweeper struct {
	SweepExtendedFn func(ctx context.Context, pageHTML, baseURL string) ([]string, error)
}

func (s *LinkSweeper) SweepExtended(ctx context.Context, pageHTML, baseURL string) ([]string, error) {
	return s.SweepExtendedFn(ctx, pageHTML, baseURL)
}

var _ webscrape.PageSession = (*PageSession)(nil)

// PageSession is a mock implementation of webscrape.PageSession.
type PageSession struct {
	NavigateFn func(ctx context.Context, url string) error
	MetricsFn  func(ctx context.Context) (float64, float64, error)
	ScrollToFn func(ctx context.Context, y float64) error
	HTMLFn     func(ctx context.Context) (string, error)
	TriggersFn func(ctx context.Context) ([]webscrape.Trigger, error)
	ClickFn    func(ctx context.Context, t webscrape.Trigger) error
	CloseFn    func() error
}

func (s *PageSession) Navigate(ctx context.Context, url string) error {
	return s.NavigateFn(ctx, url)
}

func (s *PageSession) Metrics(ctx context.Context) (float64, float64, error) {
	return s.MetricsFn(ctx)
}

func (s *PageSession) ScrollTo(ctx context.Context, y float64) error {
	return s.ScrollToFn(ctx, y)
}

func (s *PageSession) HTML(ctx context.Context) (string, error) {
	return s.HTMLFn(ctx)
}

func (s *PageSession) Triggers(ctx context.Context) ([]webscrape.Trigger, error) {
	return s.TriggersFn(ctx)
}

func (s *PageSession) Click(ctx context.Context, t webscrape.Trigger) error {
	return s.ClickFn(ctx, t)
}

func (s *PageSession) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

var _ webscrape.SessionOpener = (*SessionOpener)(nil)

// SessionOpener is a mock implementation of webscrape.SessionOpener.
type SessionOpener struct {
	OpenFn  func(ctx context.Context) (webscrape.PageSession, error)
	CloseFn func() error
}

func (o *SessionOpener) Open(ctx context.Context) (webscrape.PageSession, error) {
	return o.OpenFn(ctx)
}

func (o *SessionOpener) Close() error {
	if o.CloseFn == nil {
		return nil
	}
	return o.CloseFn()
}
