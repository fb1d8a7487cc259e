package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// exitError carries a non-zero exit status for a run whose report has
// already been printed.
type exitError struct {
	code    int
	verdict string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("diagnostic verdict %s (exit %d)", e.verdict, e.code)
}
