package crawl

import (
	"sort"
	"time"

	"github.com/docdex/docdex"
)

// Preset bundles a ready-made crawl configuration for a known
// documentation site, including the output path the corpus is written
// to.
type Preset struct {
	Config

	// Output is the corpus file path.
	Output string
}

// DefaultConfig returns the baseline configuration used when no preset
// is selected.
func DefaultConfig() Config {
	return Config{
		Selectors:   []string{"main"},
		Delay:       500 * time.Millisecond,
		WaitTimeout: 5 * time.Second,
	}
}

var presets = map[string]Preset{
	"anthropic": {
		Config: Config{
			BaseURL:   "https://docs.anthropic.com",
			StartPath: "/en/api/getting-started",
			Seeds: []string{
				"/en/api/messages",
				"/en/api/rate-limits",
				"/en/api/system-prompts",
				"/en/api/human-in-the-loop",
			},
			Pattern: `^/en/api/.*`,
			Selectors: []string{
				".docs-content",
				"main",
				"article",
				".content-wrapper",
				".content",
			},
			Delay:       1 * time.Second,
			MaxPages:    200,
			Render:      true,
			WaitTimeout: 8 * time.Second,
		},
		Output: "document/anthropic_docs.json",
	},
	"gemini": {
		Config: Config{
			BaseURL:   "https://ai.google.dev",
			StartPath: "/gemini-api/docs/",
			Seeds: []string{
				"/gemini-api/docs/models",
				"/gemini-api/docs/quickstart",
			},
			Pattern: `^/gemini-api/docs/.*`,
			Selectors: []string{
				"main",
				"article",
				".devsite-article-body",
				".devsite-article-inner",
			},
			Delay:       500 * time.Millisecond,
			MaxPages:    200,
			Render:      false,
			WaitTimeout: 5 * time.Second,
		},
		Output: "document/gemini_docs.json",
	},
}

// PresetByName returns the named built-in preset.
// Returns ENOTFOUND if no preset with that name exists.
func PresetByName(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, docdex.Errorf(docdex.ENOTFOUND, "unknown preset %q", name)
	}
	return p, nil
}

// PresetNames returns the names of the built-in presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
