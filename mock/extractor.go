package mock

import "github.com/docdex/docdex"

var _ docdex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docdex.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docdex.ExtractResult, error)
	LinksFn   func(html string) ([]string, error)
}

func (e *Extractor) Extract(html string) (*docdex.ExtractResult, error) {
	return e.ExtractFn(html)
}

func (e *Extractor) Links(html string) ([]string, error) {
	return e.LinksFn(html)
}
