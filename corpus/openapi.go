package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/docdex/docdex"
)

// operationMethods are the HTTP methods expanded from an OpenAPI path
// item, in the order their documents are emitted.
var operationMethods = []string{"get", "post", "put", "delete", "patch"}

// isOpenAPI reports whether a decoded mapping is an OpenAPI or Swagger
// specification.
func isOpenAPI(obj map[string]any) bool {
	_, hasOpenAPI := obj["openapi"]
	_, hasSwagger := obj["swagger"]
	return hasOpenAPI || hasSwagger
}

// expandOpenAPI flattens an OpenAPI specification into documents: one
// overview document from the info section, then one document per
// path and method. Paths are emitted in sorted order and methods in
// the order of operationMethods, so expansion is deterministic.
func expandOpenAPI(spec map[string]any) []docdex.Document {
	info, _ := spec["info"].(map[string]any)
	title := stringOr(info["title"], "API Documentation")
	version := stringOr(info["version"], "unknown")

	docs := []docdex.Document{{
		URL:     "api://info",
		Title:   fmt.Sprintf("%s v%s", title, version),
		Content: stringOr(info["description"], "No description"),
	}}

	paths, _ := spec["paths"].(map[string]any)
	for _, path := range sortedKeys(paths) {
		item, ok := paths[path].(map[string]any)
		if !ok {
			continue
		}
		for _, method := range operationMethods {
			operation, ok := item[method].(map[string]any)
			if !ok {
				continue
			}
			docs = append(docs, operationDocument(path, method, operation))
		}
	}

	return docs
}

// operationDocument renders one path+method pair as a document. The
// title prefers the declared operationId; the URL flattens the path
// with underscores, e.g. "api://get_users_list".
func operationDocument(path, method string, operation map[string]any) docdex.Document {
	title := stringOr(operation["operationId"], fmt.Sprintf("%s %s", strings.ToUpper(method), path))

	parameters := operation["parameters"]
	if parameters == nil {
		parameters = []any{}
	}
	responses := operation["responses"]
	if responses == nil {
		responses = map[string]any{}
	}

	content := fmt.Sprintf(`Method: %s
Path: %s
Summary: %s
Description: %s
Parameters: %s
Responses: %s
`,
		strings.ToUpper(method),
		path,
		stringOr(operation["summary"], "No summary"),
		stringOr(operation["description"], "No description"),
		compactJSON(parameters),
		compactJSON(responses),
	)

	return docdex.Document{
		URL:     "api://" + method + strings.ReplaceAll(path, "/", "_"),
		Title:   title,
		Content: content,
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stringOr returns v rendered as a string, or def when v is nil.
func stringOr(v any, def string) string {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func compactJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
