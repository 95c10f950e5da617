// Package rod provides a rendering-mode implementation of docdex.Fetcher
// using Chrome browser automation.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/docdex/docdex"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Rendering defaults. The scroll heuristics suit single-page
// documentation sites that lazy-load content on scroll; all of them are
// adjustable through Options.
const (
	// DefaultWaitTimeout is the per-selector wait after navigation.
	DefaultWaitTimeout = 5 * time.Second
	// DefaultSettleDelay is the pause that lets deferred scripts run
	// before the page is scrolled.
	DefaultSettleDelay = 1 * time.Second
	// DefaultScrollAttempts is the maximum number of scroll-to-bottom
	// attempts used to trigger lazy-loaded content.
	DefaultScrollAttempts = 3
	// DefaultScrollWait is the pause after each scroll attempt.
	DefaultScrollWait = 2 * time.Second
)

// Ensure Fetcher implements docdex.Fetcher at compile time.
var _ docdex.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using a headless Chrome
// browser. The browser is launched once and shared by all fetches for
// the lifetime of the Fetcher.
type Fetcher struct {
	launcher *launcher.Launcher
	browser  *rod.Browser

	selectors      []string
	waitTimeout    time.Duration
	settleDelay    time.Duration
	scrollAttempts int
	scrollWait     time.Duration

	mu     sync.Mutex
	closed bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSelectors sets the CSS selectors the fetcher waits for after
// navigation. Selectors are tried in order; rendering proceeds on
// whichever appears first, or after the wait timeout if none appear.
func WithSelectors(selectors []string) Option {
	return func(f *Fetcher) {
		f.selectors = selectors
	}
}

// WithWaitTimeout sets the per-selector wait timeout.
// Defaults to DefaultWaitTimeout.
func WithWaitTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.waitTimeout = d
	}
}

// WithSettleDelay sets the pause applied after the selector wait.
// Defaults to DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// WithScrollAttempts sets the maximum number of scroll-to-bottom
// attempts. Defaults to DefaultScrollAttempts.
func WithScrollAttempts(n int) Option {
	return func(f *Fetcher) {
		f.scrollAttempts = n
	}
}

// WithScrollWait sets the pause after each scroll attempt.
// Defaults to DefaultScrollWait.
func WithScrollWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.scrollWait = d
	}
}

// NewFetcher launches a headless Chrome browser and connects to it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		waitTimeout:    DefaultWaitTimeout,
		settleDelay:    DefaultSettleDelay,
		scrollAttempts: DefaultScrollAttempts,
		scrollWait:     DefaultScrollWait,
	}
	for _, opt := range opts {
		opt(f)
	}

	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.launcher = l
	f.browser = browser
	return f, nil
}

// Fetch navigates to the URL, waits for a content selector to render,
// scrolls to the bottom to trigger lazy-loaded content, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return "", docdex.Errorf(docdex.EINVALID, "fetcher is closed")
	}
	f.mu.Unlock()

	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Wait for the first configured selector to render; proceed anyway
	// when none appear within the timeout.
	for _, selector := range f.selectors {
		if _, err := page.Timeout(f.waitTimeout).Element(selector); err == nil {
			break
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	if err := sleep(ctx, f.settleDelay); err != nil {
		return "", err
	}

	if err := f.scrollToBottom(ctx, page); err != nil {
		return "", err
	}

	return page.HTML()
}

// scrollToBottom repeatedly scrolls to the bottom of the page until the
// document height stops growing or the attempt limit is reached, then
// returns to the top.
func (f *Fetcher) scrollToBottom(ctx context.Context, page *rod.Page) error {
	last, err := pageHeight(page)
	if err != nil {
		return err
	}

	for i := 0; i < f.scrollAttempts; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}
		if err := sleep(ctx, f.scrollWait); err != nil {
			return err
		}

		height, err := pageHeight(page)
		if err != nil {
			return err
		}
		if height == last {
			break
		}
		last = height
	}

	_, err = page.Eval(`() => window.scrollTo(0, 0)`)
	return err
}

func pageHeight(page *rod.Page) (float64, error) {
	res, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Num(), nil
}

// sleep pauses for d unless the context is canceled first.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Close shuts down the browser and kills the launched Chrome process.
// Close is safe to call more than once.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
