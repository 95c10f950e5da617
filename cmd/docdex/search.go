package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/corpus"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	repo := corpus.NewRepository(c.Corpus)
	if err := repo.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	results := repo.Search(c.Query)
	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No documents matched %q.\n", c.Query)
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s - %s\n", i+1, r.Title, r.URL)
		fmt.Fprintf(deps.Stdout, "   %s\n", r.Preview)
	}
	fmt.Fprintf(deps.Stdout, "\n%d of %d documents matched\n", len(results), repo.Len())

	return nil
}
