// Package slog provides logging decorators for docdex interfaces using
// the standard library structured logging package.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
)

// Ensure LoggingFetcher implements docdex.Fetcher at compile time.
var _ docdex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs each fetch with its outcome,
// size and duration.
type LoggingFetcher struct {
	next   docdex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher returns a Fetcher that delegates to next and logs
// every Fetch call to logger.
func NewLoggingFetcher(next docdex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped Fetcher and emits a single log record
// describing the call.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	start := time.Now()
	defer func() {
		attrs := []any{
			slog.String("url", url),
			slog.Int("bytes", len(html)),
			slog.Duration("duration", time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("err", err.Error()))
		}
		f.logger.InfoContext(ctx, "fetch", attrs...)
	}()

	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped Fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
