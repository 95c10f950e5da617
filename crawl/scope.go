package crawl

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/docdex/docdex"
)

// Scope decides whether a discovered hyperlink belongs to the crawl.
// It is compiled once per run from the crawl configuration and is a
// pure classifier with no side effects.
type Scope struct {
	base    *url.URL
	paths   []string
	pattern *regexp.Regexp
}

// NewScope compiles the scope rules from the configuration: the base
// origin, the start path and seed paths as admissible path prefixes,
// and the optional path pattern.
func NewScope(cfg Config) (*Scope, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL %q", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "base URL %q has no host", cfg.BaseURL)
	}

	paths := make([]string, 0, len(cfg.Seeds)+1)
	paths = append(paths, cfg.StartPath)
	paths = append(paths, cfg.Seeds...)

	var pattern *regexp.Regexp
	if cfg.Pattern != "" {
		pattern, err = regexp.Compile(cfg.Pattern)
		if err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "invalid path pattern %q: %v", cfg.Pattern, err)
		}
	}

	return &Scope{base: base, paths: paths, pattern: pattern}, nil
}

// Admit classifies a raw href. It returns the absolute URL the href
// resolves to under the base origin, with any fragment stripped, and
// true when the link is in scope:
// same host as the base origin, path under the start path or a seed
// path, and matching the path pattern from the beginning when one is
// configured. Fragment-only, mailto: and javascript: links are always
// out of scope.
func (s *Scope) Admit(href string) (string, bool) {
	if href == "" {
		return "", false
	}
	if strings.HasPrefix(href, "#") {
		return "", false
	}
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := s.base.ResolveReference(ref)
	resolved.Fragment = ""

	if resolved.Host != s.base.Host {
		return "", false
	}

	admissible := false
	for _, p := range s.paths {
		if strings.HasPrefix(resolved.Path, p) {
			admissible = true
			break
		}
	}
	if !admissible {
		return "", false
	}

	if s.pattern != nil {
		// Match anchored at the start of the path, not anywhere in it.
		loc := s.pattern.FindStringIndex(resolved.Path)
		if loc == nil || loc[0] != 0 {
			return "", false
		}
	}

	return resolved.String(), true
}

// Resolve returns the absolute URL for a configured path under the base
// origin, with any fragment stripped. Used for the start URL and seeds,
// which enter the frontier without passing through Admit.
func (s *Scope) Resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", docdex.Errorf(docdex.EINVALID, "invalid path %q", path)
	}
	resolved := s.base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String(), nil
}
