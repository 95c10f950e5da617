package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/corpus"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	repo := corpus.NewRepository(c.Corpus)
	if err := repo.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	doc, err := repo.Get(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, doc.Title)
	fmt.Fprintln(deps.Stdout, doc.URL)
	fmt.Fprintln(deps.Stdout, "---")
	fmt.Fprintln(deps.Stdout, doc.Content)

	return nil
}
