// Package goquery provides selector-based content extraction and
// hyperlink enumeration for crawled HTML pages.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docdex/docdex"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docdex.Extractor at compile time.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor locates the main content region of a page by trying an
// ordered list of CSS selectors; the first selector that matches wins.
// When no selector matches, the document body is used instead.
type Extractor struct {
	selectors []string
}

// NewExtractor creates an Extractor that tries the given selectors in order.
func NewExtractor(selectors []string) *Extractor {
	return &Extractor{selectors: selectors}
}

// Extract parses raw HTML and returns the serialized content region
// along with page metadata. Images are removed from the region before
// serialization.
func (e *Extractor) Extract(rawHTML string) (*docdex.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &docdex.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: doc.Find(`meta[name="description"]`).First().AttrOr("content", ""),
	}

	if region := e.contentRegion(doc); region != nil {
		region.Find("img").Remove()
		markup, err := renderNodes(region)
		if err != nil {
			return nil, err
		}
		result.ContentHTML = markup
	}

	return result, nil
}

// contentRegion returns the first selector match, falling back to the
// document body. Returns nil only when the document has no body element.
func (e *Extractor) contentRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.selectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return nil
}

// renderNodes converts a selection back to markup, including the
// selected elements themselves.
func renderNodes(sel *goquery.Selection) (string, error) {
	var buf bytes.Buffer
	for _, n := range sel.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
