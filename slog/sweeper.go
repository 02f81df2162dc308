// Package slog provides logging decorators for webscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	webscrape "github.com/codermillat/WebScrape-sub000"
)

// Ensure LoggingSweeper implements webscrape.Sweeper.
var _ webscrape.Sweeper = (*LoggingSweeper)(nil)

// LoggingSweeper wraps a Sweeper with debug logging.
type LoggingSweeper struct {
	next   webscrape.Sweeper
	logger *slog.Logger
}

// NewLoggingSweeper creates a new LoggingSweeper.
func NewLoggingSweeper(next webscrape.Sweeper, logger *slog.Logger) *LoggingSweeper {
	return &LoggingSweeper{next: next, logger: logger}
}

// Sweep delegates to the wrapped sweeper and logs the outcome.
func (s *LoggingSweeper) Sweep(ctx context.Context, url string, cfg webscrape.SweepConfig) (result *webscrape.SweepResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"lines", len(result.Lines),
				"reveals", result.Reveals,
				"iterations", result.Iterations,
				"termination", string(result.Termination),
			)
		}
		s.logger.Info("sweep", attrs...)
	}(time.Now())
	return s.next.Sweep(ctx, url, cfg)
}

// Close delegates to the wrapped sweeper.
func (s *LoggingSweeper) Close() error {
	return s.next.Close()
}
