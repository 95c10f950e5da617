package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/corpus"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	repo := corpus.NewRepository(c.Corpus)
	if err := repo.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	docs := repo.Documents()
	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "Corpus is empty.")
		return nil
	}

	for i, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%d. %s - %s\n", i+1, doc.Title, doc.URL)
	}
	fmt.Fprintf(deps.Stdout, "\n%d documents\n", len(docs))

	return nil
}
