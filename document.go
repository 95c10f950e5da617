package docdex

// Document represents a single crawled documentation page.
// Documents are immutable once created; they are appended to the corpus
// in discovery order and never deleted.
type Document struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// SearchResult is a single keyword search hit with a short content preview.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Preview string `json:"preview"`
}
