package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds shared services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Enable debug logging"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl a documentation site into a JSON corpus"`
	Search SearchCmd `cmd:"" help:"Search a corpus by keyword"`
	Show   ShowCmd   `cmd:"" help:"Show a single corpus document"`
	List   ListCmd   `cmd:"" help:"List the documents in a corpus"`
	Serve  ServeCmd  `cmd:"" help:"Answer corpus queries over stdin/stdout"`
}

// CrawlCmd is the "crawl" subcommand. Flags left unset fall back to the
// preset (or default) configuration, so pointer types distinguish "not
// given" from an explicit zero.
type CrawlCmd struct {
	Preset      string            `short:"p" help:"Start from a preconfigured site (anthropic, gemini)"`
	BaseURL     string            `help:"Site root, e.g. https://docs.example.com"`
	StartPath   string            `help:"Path the crawl starts from"`
	Seed        []string          `help:"Additional start path (repeatable)"`
	Pattern     string            `help:"Regex that admitted paths must match"`
	Selector    []string          `help:"Content selector, first match wins (repeatable)"`
	Delay       *time.Duration    `help:"Pause between page fetches"`
	MaxPages    *int              `help:"Page budget, 0 for unlimited"`
	Render      *bool             `help:"Render pages in a headless browser"`
	WaitTimeout *time.Duration    `help:"Per-selector wait when rendering"`
	Header      map[string]string `help:"Extra request header as name=value (repeatable)"`
	Timeout     time.Duration     `default:"30s" help:"HTTP fetch timeout per page"`
	Output      string            `short:"o" help:"Corpus file to write"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Corpus string `arg:"" help:"Corpus file"`
	Query  string `arg:"" help:"Keyword to search for"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Corpus string `arg:"" help:"Corpus file"`
	URL    string `arg:"" help:"URL of the document to show"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Corpus string `arg:"" help:"Corpus file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Corpus string `arg:"" help:"Corpus file"`
}
