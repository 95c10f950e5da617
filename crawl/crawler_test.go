package crawl_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
	"github.com/docdex/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page is a canned site page for crawl tests.
type page struct {
	title   string
	content string
	links   []string
}

// richContent is long enough to clear the sparse-content threshold.
var richContent = strings.Repeat("<p>documentation body</p>", 10)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// siteCrawler builds a Crawler over a canned site graph keyed by
// absolute URL. The mock fetcher returns the URL itself as the page
// markup, and the mock extractor uses it to look up the page.
func siteCrawler(t *testing.T, pages map[string]page) *crawl.Crawler {
	t.Helper()

	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if _, ok := pages[url]; !ok {
					return "", docdex.Errorf(docdex.EINTERNAL, "no such page %q", url)
				}
				return url, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*docdex.ExtractResult, error) {
				p := pages[html]
				return &docdex.ExtractResult{Title: p.title, ContentHTML: p.content}, nil
			},
			LinksFn: func(html string) ([]string, error) {
				return pages[html].links, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return html, nil
			},
		},
		Logger: discardLogger(),
	}
}

func documentURLs(result *crawl.Result) []string {
	urls := make([]string, 0, len(result.Documents))
	for _, doc := range result.Documents {
		urls = append(urls, doc.URL)
	}
	return urls
}

func TestCrawler_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls pages depth-first", func(t *testing.T) {
		t.Parallel()

		// /docs/ links to a then c; a links to b. Depth-first order
		// descends into a's subtree before visiting c.
		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a", "/docs/c"}},
			"https://example.com/docs/a": {title: "A", content: richContent, links: []string{"/docs/b"}},
			"https://example.com/docs/b": {title: "B", content: richContent},
			"https://example.com/docs/c": {title: "C", content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/",
			"https://example.com/docs/a",
			"https://example.com/docs/b",
			"https://example.com/docs/c",
		}, documentURLs(result))
		assert.Equal(t, 4, result.Fetched)
		assert.Equal(t, 4, result.Saved)
	})

	t.Run("never fetches the same URL twice", func(t *testing.T) {
		t.Parallel()

		pages := map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a", "/docs/b"}},
			"https://example.com/docs/a": {title: "A", content: richContent, links: []string{"/docs/", "/docs/b", "/docs/a"}},
			"https://example.com/docs/b": {title: "B", content: richContent, links: []string{"/docs/a"}},
		}
		c := siteCrawler(t, pages)

		fetchCounts := make(map[string]int)
		inner := c.Fetcher
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetchCounts[url]++
				return inner.Fetch(ctx, url)
			},
		}

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
		})

		require.NoError(t, err)
		assert.Len(t, result.Documents, 3)
		for url, count := range fetchCounts {
			assert.Equal(t, 1, count, "URL %s fetched more than once", url)
		}
	})

	t.Run("respects the page budget", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a"}},
			"https://example.com/docs/a": {title: "A", content: richContent, links: []string{"/docs/b"}},
			"https://example.com/docs/b": {title: "B", content: richContent, links: []string{"/docs/c"}},
			"https://example.com/docs/c": {title: "C", content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
			MaxPages:  2,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Fetched)
		assert.Len(t, result.Documents, 2)
	})

	t.Run("budget of one stops after the start page", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a", "/docs/b"}},
			"https://example.com/docs/a": {title: "A", content: richContent},
			"https://example.com/docs/b": {title: "B", content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
			MaxPages:  1,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fetched)
		assert.Equal(t, []string{"https://example.com/docs/"}, documentURLs(result))
	})

	t.Run("sparse page yields no document but links onward", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":  {title: "Stub", content: "<p>stub</p>", links: []string{"/docs/a"}},
			"https://example.com/docs/a": {title: "A", content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/docs/a"}, documentURLs(result))
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 2, result.Fetched)
	})

	t.Run("falls back to the URL when a page has no title", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/": {content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
		})

		require.NoError(t, err)
		require.Len(t, result.Documents, 1)
		assert.Equal(t, "https://example.com/docs/", result.Documents[0].Title)
	})

	t.Run("failed fetch abandons the URL but not the crawl", func(t *testing.T) {
		t.Parallel()

		// /docs/a is not in the canned site, so fetching it fails.
		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a", "/docs/b"}},
			"https://example.com/docs/b": {title: "B", content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/",
			"https://example.com/docs/b",
		}, documentURLs(result))
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 3, result.Fetched)
	})

	t.Run("seeds are crawled after the start subtree", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":       {title: "Index", content: richContent, links: []string{"/docs/a"}},
			"https://example.com/docs/a":      {title: "A", content: richContent},
			"https://example.com/docs/extra":  {title: "Extra", content: richContent, links: []string{"/docs/extra2"}},
			"https://example.com/docs/extra2": {title: "Extra2", content: richContent},
		})

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
			Seeds:     []string{"/docs/extra"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.com/docs/",
			"https://example.com/docs/a",
			"https://example.com/docs/extra",
			"https://example.com/docs/extra2",
		}, documentURLs(result))
	})

	t.Run("seed already reached via links is not crawled again", func(t *testing.T) {
		t.Parallel()

		pages := map[string]page{
			"https://example.com/docs/":      {title: "Index", content: richContent, links: []string{"/docs/extra"}},
			"https://example.com/docs/extra": {title: "Extra", content: richContent},
		}
		c := siteCrawler(t, pages)

		fetchCounts := make(map[string]int)
		inner := c.Fetcher
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetchCounts[url]++
				return inner.Fetch(ctx, url)
			},
		}

		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
			Seeds:     []string{"/docs/extra"},
		})

		require.NoError(t, err)
		assert.Len(t, result.Documents, 2)
		assert.Equal(t, 1, fetchCounts["https://example.com/docs/extra"])
	})

	t.Run("waits between requests", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a", "/docs/b"}},
			"https://example.com/docs/a": {title: "A", content: richContent},
			"https://example.com/docs/b": {title: "B", content: richContent},
		})

		start := time.Now()
		result, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
			Delay:     50 * time.Millisecond,
		})
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Fetched)
		// Two non-root descents, each preceded by the delay.
		assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		pages := map[string]page{
			"https://example.com/docs/":  {title: "Index", content: richContent, links: []string{"/docs/a"}},
			"https://example.com/docs/a": {title: "A", content: richContent},
		}
		c := siteCrawler(t, pages)

		inner := c.Fetcher
		c.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				// Cancel after the first page has been fetched.
				defer cancel()
				return inner.Fetch(ctx, url)
			},
		}

		result, err := c.Run(ctx, crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fetched)
	})

	t.Run("rejects an invalid base URL", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, nil)

		_, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "not-a-url",
			StartPath: "/docs/",
		})

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects an invalid path pattern", func(t *testing.T) {
		t.Parallel()

		c := siteCrawler(t, nil)

		_, err := c.Run(context.Background(), crawl.Config{
			BaseURL:   "https://example.com",
			StartPath: "/docs/",
			Pattern:   "[",
		})

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}
