package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdex/docdex"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a corpus from path. The format follows the extension:
// .json and .yaml/.yml files hold a document array, an OpenAPI
// specification, or an arbitrary object treated as a single document;
// .txt files yield one document per non-empty line.
func LoadFile(path string) ([]docdex.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}
	return decode(path, raw)
}

func decode(path string, raw []byte) ([]docdex.Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSON(raw)
	case ".yaml", ".yml":
		return decodeYAML(raw)
	case ".txt":
		return decodeText(raw), nil
	default:
		return nil, docdex.Errorf(docdex.EINVALID, "unsupported corpus format %q", ext)
	}
}

func decodeJSON(raw []byte) ([]docdex.Document, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid JSON corpus: %v", err)
	}

	switch obj := data.(type) {
	case []any:
		var docs []docdex.Document
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "invalid document array: %v", err)
		}
		return docs, nil
	case map[string]any:
		if isOpenAPI(obj) {
			return expandOpenAPI(obj), nil
		}
		content, err := prettyJSON(obj)
		if err != nil {
			return nil, err
		}
		return []docdex.Document{singleDocument(content)}, nil
	default:
		return nil, docdex.Errorf(docdex.EINVALID, "corpus must be an array or an object")
	}
}

func decodeYAML(raw []byte) ([]docdex.Document, error) {
	var data any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid YAML corpus: %v", err)
	}

	switch obj := data.(type) {
	case []any:
		var docs []docdex.Document
		if err := yaml.Unmarshal(raw, &docs); err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "invalid document array: %v", err)
		}
		return docs, nil
	case map[string]any:
		if isOpenAPI(obj) {
			return expandOpenAPI(obj), nil
		}
		content, err := yaml.Marshal(obj)
		if err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "re-encoding YAML document: %v", err)
		}
		return []docdex.Document{singleDocument(string(content))}, nil
	default:
		return nil, docdex.Errorf(docdex.EINVALID, "corpus must be an array or an object")
	}
}

// decodeText yields one document per non-empty line, numbered by the
// line's position in the raw file.
func decodeText(raw []byte) []docdex.Document {
	var docs []docdex.Document
	for i, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		n := i + 1
		docs = append(docs, docdex.Document{
			URL:     fmt.Sprintf("txt://line/%d", n),
			Title:   fmt.Sprintf("Line %d", n),
			Content: trimmed,
		})
	}
	return docs
}

// singleDocument wraps an arbitrary re-encoded object as a one-document
// corpus.
func singleDocument(content string) docdex.Document {
	return docdex.Document{
		URL:     "api://document",
		Title:   "Document",
		Content: content,
	}
}

func prettyJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", docdex.Errorf(docdex.EINVALID, "re-encoding JSON document: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
