package docdex

// ExtractResult holds the content region and metadata extracted from an HTML page.
type ExtractResult struct {
	// Title is the trimmed text of the page's <title> element.
	// Empty if the page has no title.
	Title string

	// Description is the content attribute of the page's
	// <meta name="description"> tag. Empty if absent.
	Description string

	// ContentHTML is the serialized markup of the main content region:
	// the first configured selector that matches, or the document body
	// when none match.
	ContentHTML string
}

// Extractor locates the main content region of an HTML page and
// enumerates the hyperlinks it contains.
type Extractor interface {
	// Extract processes raw HTML and returns the main content region
	// along with page metadata.
	Extract(html string) (*ExtractResult, error)

	// Links returns the href values of all anchors in the page, in
	// document order, unresolved.
	Links(html string) ([]string, error)
}
