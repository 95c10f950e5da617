// Package crawl provides documentation crawl orchestration.
// It coordinates fetching, content extraction, link classification, and
// collection of documentation pages into an ordered corpus.
package crawl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/docdex/docdex"
)

// minContentChars is the minimum length of the serialized content
// region, after trimming surrounding whitespace, for a page to yield a
// document. Shorter regions are treated as placeholder or error pages.
const minContentChars = 100

// Config holds the immutable configuration for a single crawl run.
type Config struct {
	// BaseURL is the site origin, e.g. "https://docs.example.com".
	BaseURL string

	// StartPath is the path the crawl starts from.
	StartPath string

	// Seeds are additional paths crawled after the start path's subtree
	// is exhausted, expanding the reachable set beyond what the start
	// page links to.
	Seeds []string

	// Pattern optionally restricts crawled paths to those matching this
	// regular expression from the beginning.
	Pattern string

	// Selectors is the ordered list of CSS selectors locating the
	// content region; the first that matches wins.
	Selectors []string

	// Delay is the pause inserted before each request after the first.
	Delay time.Duration

	// MaxPages bounds the number of pages fetched. Zero means unbounded.
	MaxPages int

	// Render enables browser-based fetching for sites that build their
	// content with scripts.
	Render bool

	// WaitTimeout is how long rendering mode waits for a content
	// selector to appear after navigation.
	WaitTimeout time.Duration

	// Headers are sent with every direct-mode request. A browser-like
	// User-Agent is applied when unset.
	Headers map[string]string
}

// Crawler walks a documentation site depth-first and collects the pages
// it visits. The traversal is single-threaded and synchronous; each
// fetch blocks until it completes or fails.
type Crawler struct {
	Fetcher   docdex.Fetcher
	Extractor docdex.Extractor
	Converter docdex.Converter
	Logger    *slog.Logger
}

// Result holds the outcome of a crawl run.
type Result struct {
	// Documents is the collected corpus in discovery order.
	Documents []docdex.Document

	Fetched int
	Saved   int
	Skipped int
	Failed  int
}

// Run executes a crawl and returns the collected corpus. Corpus order
// is depth-first discovery order: each accepted link on a page is
// crawled before the next sibling link on the same page.
//
// Run returns an error only for invalid configuration; per-URL fetch
// and extraction failures are logged and counted in the Result.
func (c *Crawler) Run(ctx context.Context, cfg Config) (*Result, error) {
	scope, err := NewScope(cfg)
	if err != nil {
		return nil, err
	}

	start, err := scope.Resolve(cfg.StartPath)
	if err != nil {
		return nil, err
	}
	seeds := make([]string, 0, len(cfg.Seeds))
	for _, seed := range cfg.Seeds {
		resolved, err := scope.Resolve(seed)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, resolved)
	}

	logger := c.logger()
	logger.InfoContext(ctx, "crawl starting",
		"base_url", cfg.BaseURL,
		"start_path", cfg.StartPath,
		"seeds", len(seeds),
		"max_pages", cfg.MaxPages,
		"render", cfg.Render,
	)

	frontier := NewFrontier()
	result := &Result{}

	frontier.Push(Link{URL: start, Root: true})
	c.crawlFrontier(ctx, cfg, scope, frontier, result)

	for _, seed := range seeds {
		if ctx.Err() != nil {
			break
		}
		if cfg.MaxPages > 0 && result.Fetched >= cfg.MaxPages {
			break
		}
		if frontier.Seen(seed) {
			continue
		}
		frontier.Push(Link{URL: seed, Root: true})
		c.crawlFrontier(ctx, cfg, scope, frontier, result)
	}

	logger.InfoContext(ctx, "crawl complete",
		"fetched", result.Fetched,
		"saved", result.Saved,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

// crawlFrontier pops links until the frontier is empty, the page budget
// is reached, or the context is canceled.
func (c *Crawler) crawlFrontier(ctx context.Context, cfg Config, scope *Scope, frontier *Frontier, result *Result) {
	logger := c.logger()

	for {
		link, ok := frontier.Pop()
		if !ok {
			return
		}
		if cfg.MaxPages > 0 && result.Fetched >= cfg.MaxPages {
			logger.InfoContext(ctx, "page budget reached, stopping crawl", "max_pages", cfg.MaxPages)
			return
		}
		if ctx.Err() != nil {
			return
		}
		if !link.Root && cfg.Delay > 0 {
			if err := sleep(ctx, cfg.Delay); err != nil {
				return
			}
		}
		result.Fetched++

		html, err := c.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			result.Failed++
			logger.WarnContext(ctx, "fetch failed", "url", link.URL, "err", err.Error())
			continue
		}

		extracted, err := c.Extractor.Extract(html)
		if err != nil {
			result.Failed++
			logger.WarnContext(ctx, "extraction failed", "url", link.URL, "err", err.Error())
			continue
		}

		if len(strings.TrimSpace(extracted.ContentHTML)) < minContentChars {
			result.Skipped++
			logger.WarnContext(ctx, "content region too sparse, skipping", "url", link.URL)
		} else if markdown, err := c.Converter.Convert(extracted.ContentHTML); err != nil {
			result.Failed++
			logger.WarnContext(ctx, "markdown conversion failed", "url", link.URL, "err", err.Error())
		} else {
			title := extracted.Title
			if title == "" {
				title = link.URL
			}
			result.Documents = append(result.Documents, docdex.Document{
				URL:         link.URL,
				Title:       title,
				Description: extracted.Description,
				Content:     markdown,
			})
			result.Saved++
			logger.InfoContext(ctx, "page crawled", "url", link.URL, "title", title)
		}

		// A sparse or unconvertible page still links onward; discovery
		// runs on every page that parsed, whether or not it produced a
		// document.
		links, err := c.Extractor.Links(html)
		if err != nil {
			continue
		}

		// Push in reverse document order so the LIFO frontier pops the
		// page's first link first.
		for i := len(links) - 1; i >= 0; i-- {
			if resolved, ok := scope.Admit(links[i]); ok {
				frontier.Push(Link{URL: resolved})
			}
		}
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
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
