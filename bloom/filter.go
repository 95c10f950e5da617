// Package bloom provides approximate URL membership for crawl
// deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers URLs probabilistically. A negative answer is
// definitive; a positive one may be a false positive.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs at the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Seen returns true if the URL may have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}
