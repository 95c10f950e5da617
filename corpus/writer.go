// Package corpus reads, writes, and serves the document corpus: the
// JSON artifact a crawl produces and every downstream consumer reads.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docdex/docdex"
)

// WriteFile serializes documents to path as an indented JSON array,
// creating parent directories as needed and overwriting any existing
// file. Non-ASCII text is written literally, never escaped.
func WriteFile(path string, docs []docdex.Document) error {
	for i := range docs {
		if err := docs[i].Validate(); err != nil {
			return err
		}
	}
	if docs == nil {
		docs = []docdex.Document{}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		f.Close()
		return fmt.Errorf("encoding corpus: %w", err)
	}
	return f.Close()
}
