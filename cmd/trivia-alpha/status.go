package main

import (
	"fmt"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	cp, err := deps.Checkpoint.Checkpoint(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", trivia.ErrorMessage(err))
		return err
	}

	var stored int
	err = deps.DB.QueryRowContext(deps.Ctx, "SELECT COUNT(*) FROM documents").Scan(&stored)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Documents stored:  %d\n", stored)
	fmt.Fprintf(deps.Stdout, "Titles processed:  %d\n", len(cp.Processed))
	fmt.Fprintf(deps.Stdout, "Titles failed:     %d\n", len(cp.Failed))
	if !cp.Started.IsZero() {
		fmt.Fprintf(deps.Stdout, "Run started:       %s\n", cp.Started.Format("2006-01-02 15:04:05"))
	}
	for title, detail := range cp.Failed {
		fmt.Fprintf(deps.Stdout, "  failed: %s (%s)\n", title, detail)
	}
	return nil
}
