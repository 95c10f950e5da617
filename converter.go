package docdex

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be a content region (e.g., from an Extractor).
	// Hyperlink destinations are preserved inline; images are dropped.
	Convert(html string) (string, error)
}
