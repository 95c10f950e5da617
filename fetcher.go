package docdex

import "context"

// Fetcher retrieves raw HTML from URLs.
// Implementations may use plain HTTP requests or browser automation for
// pages that require JavaScript execution to produce their content.
type Fetcher interface {
	// Fetch retrieves the HTML for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
