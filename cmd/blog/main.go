package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-blog/internal/frontmatter"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		reportFailure(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func reportFailure(w io.Writer, err error) {
	message := err.Error()
	if verr, ok := frontmatter.AsValidationError(err); ok {
		message = verr.Error()
	}
	fmt.Fprintf(w, "\n❌ %s\n\n", message)
}
