package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/corpus"
	"github.com/docdex/docdex/crawl"
	"github.com/docdex/docdex/goquery"
	"github.com/docdex/docdex/htmltomarkdown"
	docdexhttp "github.com/docdex/docdex/http"
	"github.com/docdex/docdex/rod"
	docdexslog "github.com/docdex/docdex/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg, output, err := c.config()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fetcher, err := c.newFetcher(cfg, deps)
	if err != nil {
		return err
	}
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(cfg.Selectors),
		Converter: htmltomarkdown.NewConverter(),
		Logger:    deps.Logger,
	}

	result, err := crawler.Run(deps.Ctx, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if err := corpus.WriteFile(output, result.Documents); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages: %d saved, %d skipped, %d failed\n",
		result.Fetched, result.Saved, result.Skipped, result.Failed)
	fmt.Fprintf(deps.Stdout, "Corpus written to %s\n", output)
	return nil
}

// config resolves the effective crawl configuration: the preset (or the
// defaults) first, then explicit flags on top.
func (c *CrawlCmd) config() (crawl.Config, string, error) {
	var cfg crawl.Config
	output := c.Output

	if c.Preset != "" {
		preset, err := crawl.PresetByName(c.Preset)
		if err != nil {
			return crawl.Config{}, "", err
		}
		cfg = preset.Config
		if output == "" {
			output = preset.Output
		}
	} else {
		cfg = crawl.DefaultConfig()
		if c.BaseURL == "" {
			return crawl.Config{}, "", docdex.Errorf(docdex.EINVALID, "--base-url is required without --preset")
		}
		if c.StartPath == "" {
			return crawl.Config{}, "", docdex.Errorf(docdex.EINVALID, "--start-path is required without --preset")
		}
		if output == "" {
			return crawl.Config{}, "", docdex.Errorf(docdex.EINVALID, "--output is required without --preset")
		}
	}

	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.StartPath != "" {
		cfg.StartPath = c.StartPath
	}
	if len(c.Seed) > 0 {
		cfg.Seeds = c.Seed
	}
	if c.Pattern != "" {
		cfg.Pattern = c.Pattern
	}
	if len(c.Selector) > 0 {
		cfg.Selectors = c.Selector
	}
	if c.Delay != nil {
		cfg.Delay = *c.Delay
	}
	if c.MaxPages != nil {
		cfg.MaxPages = *c.MaxPages
	}
	if c.Render != nil {
		cfg.Render = *c.Render
	}
	if c.WaitTimeout != nil {
		cfg.WaitTimeout = *c.WaitTimeout
	}
	if len(c.Header) > 0 {
		cfg.Headers = c.Header
	}

	return cfg, output, nil
}

// newFetcher builds the fetch pipeline for the resolved configuration:
// a plain HTTP client, fronted by a headless browser in rendering mode,
// with request logging wrapped around the whole stack.
func (c *CrawlCmd) newFetcher(cfg crawl.Config, deps *Dependencies) (docdex.Fetcher, error) {
	opts := []docdexhttp.Option{docdexhttp.WithTimeout(c.Timeout)}
	if len(cfg.Headers) > 0 {
		opts = append(opts, docdexhttp.WithHeaders(cfg.Headers))
	}
	var fetcher docdex.Fetcher = docdexhttp.NewFetcher(opts...)

	if cfg.Render {
		rodFetcher, err := rod.NewFetcher(
			rod.WithSelectors(cfg.Selectors),
			rod.WithWaitTimeout(cfg.WaitTimeout),
		)
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = crawl.NewFallbackFetcher(rodFetcher, fetcher, deps.Logger)
	}

	return docdexslog.NewLoggingFetcher(fetcher, deps.Logger), nil
}
