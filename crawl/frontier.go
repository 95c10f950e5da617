package crawl

import (
	"strings"
	"sync"

	"github.com/docdex/docdex/bloom"
)

// Frontier sizing.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for the fast path.
	frontierFalsePositiveRate = 0.01
)

// Link is a frontier entry. Root marks the start URL and configured
// seeds, which are descended into without the inter-request delay.
type Link struct {
	URL  string
	Root bool
}

// Frontier is an in-memory LIFO frontier with exact deduplication.
// A Bloom filter screens pushes: a filter miss means the URL is
// definitely new, a filter hit is confirmed against the authoritative
// set, so a false positive never drops a URL. Popping last-pushed-first
// gives the crawl engine its depth-first order. It is safe for
// concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	fast  *bloom.Filter
	seen  map[string]struct{}
	stack []Link
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		fast: bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		seen: make(map[string]struct{}),
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URL fragments are stripped before deduplication - URLs differing only by fragment
// are considered duplicates.
func (f *Frontier) Push(link Link) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.fast.Seen(url) {
		if _, ok := f.seen[url]; ok {
			return false
		}
	}
	f.fast.Add(url)
	f.seen[url] = struct{}{}

	// Store the URL without fragment
	link.URL = url
	f.stack = append(f.stack, link)
	return true
}

// Pop returns the most recently pushed link.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (Link, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.stack) == 0 {
		return Link{}, false
	}
	link := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return link, true
}

// Len returns the number of links waiting in the frontier.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}

// Seen returns true if the URL has been pushed at some point.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(rawURL)
	if !f.fast.Seen(url) {
		return false
	}
	_, ok := f.seen[url]
	return ok
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
