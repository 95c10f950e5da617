package corpus

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/docdex/docdex"
)

// searchPreviewRunes is the preview length attached to search results.
const searchPreviewRunes = 200

// Repository serves a loaded corpus: keyword search, lookup by URL,
// listing, and reload. It is safe for concurrent use.
type Repository struct {
	path string

	mu     sync.RWMutex
	docs   []docdex.Document
	sum    uint64
	loaded bool
}

// NewRepository creates a Repository over the corpus file at path.
// Call Open before using it.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Open loads the corpus file.
func (r *Repository) Open() error {
	return r.Reload()
}

// Reload re-reads the corpus file, replacing the in-memory documents.
// When the file bytes are unchanged since the last load, the decoded
// documents are kept as they are.
func (r *Repository) Reload() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("reading corpus file: %w", err)
	}
	sum := xxhash.Sum64(raw)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded && sum == r.sum {
		return nil
	}

	docs, err := decode(r.path, raw)
	if err != nil {
		return err
	}
	r.docs = docs
	r.sum = sum
	r.loaded = true
	return nil
}

// Search returns all documents whose title or content contains the
// query, case-insensitively. An empty query matches every document.
// Each result carries a preview of the first 200 characters of content.
func (r *Repository) Search(query string) []docdex.SearchResult {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []docdex.SearchResult
	for i := range r.docs {
		doc := &r.docs[i]
		if strings.Contains(strings.ToLower(doc.Title), q) ||
			strings.Contains(strings.ToLower(doc.Content), q) {
			results = append(results, docdex.SearchResult{
				Title:   doc.Title,
				URL:     doc.URL,
				Preview: preview(doc.Content),
			})
		}
	}
	return results
}

// Get returns the document with the given URL.
// Returns ENOTFOUND if no document has that URL.
func (r *Repository) Get(url string) (*docdex.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.docs {
		if r.docs[i].URL == url {
			doc := r.docs[i]
			return &doc, nil
		}
	}
	return nil, docdex.Errorf(docdex.ENOTFOUND, "document %q not found", url)
}

// Documents returns the loaded documents in corpus order.
// The returned slice must not be modified.
func (r *Repository) Documents() []docdex.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.docs
}

// Len returns the number of loaded documents.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// preview truncates content to the first searchPreviewRunes runes,
// appending an ellipsis when truncated. Truncation is rune-safe so
// non-ASCII content survives intact.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= searchPreviewRunes {
		return content
	}
	return string(runes[:searchPreviewRunes]) + "..."
}
