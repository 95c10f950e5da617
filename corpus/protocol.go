package corpus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/docdex/docdex"
)

// maxRequestBytes caps the length of a single protocol request line.
const maxRequestBytes = 1 << 20

// Request is one protocol request: a single JSON object per line.
type Request struct {
	Op    string `json:"op"`
	Query string `json:"query,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Response is the reply to a Request, one JSON object per line.
type Response struct {
	Op    string         `json:"op"`
	Data  any            `json:"data,omitempty"`
	Error *ResponseError `json:"error,omitempty"`
}

// ResponseError carries a machine-readable code and a human-readable
// message.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListItem describes one corpus document in a list response.
type ListItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Protocol exposes a Repository as a line-oriented JSON query surface
// for a calling agent. Supported ops: "list", "search", "get",
// "reload". Unknown ops produce an error response, not a dropped
// connection.
type Protocol struct {
	repo   *Repository
	logger *slog.Logger
}

// NewProtocol creates a Protocol serving the given repository.
func NewProtocol(repo *Repository, logger *slog.Logger) *Protocol {
	if logger == nil {
		logger = slog.Default()
	}
	return &Protocol{repo: repo, logger: logger}
}

// Serve reads one JSON request per line from r and writes one JSON
// response per line to w, until EOF or context cancellation. Requests
// are handled serially in arrival order.
func (p *Protocol) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := errorResponse("", docdex.Errorf(docdex.EINVALID, "malformed request: %v", err))
			if err := enc.Encode(resp); err != nil {
				return err
			}
			continue
		}

		p.logger.DebugContext(ctx, "handling request", "op", req.Op)
		if err := enc.Encode(p.handle(req)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (p *Protocol) handle(req Request) Response {
	switch req.Op {
	case "list":
		docs := p.repo.Documents()
		items := make([]ListItem, 0, len(docs))
		for _, doc := range docs {
			items = append(items, ListItem{Title: doc.Title, URL: doc.URL})
		}
		return Response{Op: req.Op, Data: items}

	case "search":
		results := p.repo.Search(req.Query)
		if results == nil {
			results = []docdex.SearchResult{}
		}
		return Response{Op: req.Op, Data: results}

	case "get":
		doc, err := p.repo.Get(req.URL)
		if err != nil {
			return errorResponse(req.Op, err)
		}
		return Response{Op: req.Op, Data: doc}

	case "reload":
		if err := p.repo.Reload(); err != nil {
			return errorResponse(req.Op, err)
		}
		return Response{Op: req.Op, Data: map[string]int{"documents": p.repo.Len()}}

	default:
		return errorResponse(req.Op, docdex.Errorf(docdex.EINVALID, "unknown op %q", req.Op))
	}
}

func errorResponse(op string, err error) Response {
	return Response{Op: op, Error: &ResponseError{
		Code:    docdex.ErrorCode(err),
		Message: docdex.ErrorMessage(err),
	}}
}
