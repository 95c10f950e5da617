package crawl

import (
	"context"
	"errors"
	"log/slog"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher implements docdex.Fetcher by trying a primary fetcher
// and falling back to a secondary one when the primary fails. The crawl
// engine uses it to retry a rendering-mode fetch as a direct request
// within the same call.
type FallbackFetcher struct {
	primary  docdex.Fetcher
	fallback docdex.Fetcher
	logger   *slog.Logger
}

// NewFallbackFetcher creates a new FallbackFetcher.
// The fallback fetcher is only consulted when the primary returns an
// error; each fallback is logged at warn level.
func NewFallbackFetcher(primary, fallback docdex.Fetcher, logger *slog.Logger) *FallbackFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackFetcher{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Fetch implements docdex.Fetcher.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.primary.Fetch(ctx, url)
	if err == nil {
		return html, nil
	}

	// A canceled context fails both fetchers; surface the primary error.
	if ctx.Err() != nil {
		return "", err
	}

	f.logger.WarnContext(ctx, "primary fetch failed, falling back",
		slog.String("url", url),
		slog.String("err", err.Error()),
	)
	return f.fallback.Fetch(ctx, url)
}

// Close closes both fetchers and reports the first error of each.
func (f *FallbackFetcher) Close() error {
	return errors.Join(f.primary.Close(), f.fallback.Close())
}
