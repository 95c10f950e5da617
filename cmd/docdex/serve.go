package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/corpus"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	repo := corpus.NewRepository(c.Corpus)
	if err := repo.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	deps.Logger.InfoContext(deps.Ctx, "serving corpus", "path", c.Corpus, "documents", repo.Len())

	protocol := corpus.NewProtocol(repo, deps.Logger)
	return protocol.Serve(deps.Ctx, deps.Stdin, deps.Stdout)
}
