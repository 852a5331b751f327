package main

import (
	"fmt"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/batch"
)

// Run executes the cleanup command.
func (c *CleanupCmd) Run(deps *Dependencies) error {
	sweep := &batch.Cleanup{Store: deps.Documents, DryRun: c.DryRun}

	result, err := sweep.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", trivia.ErrorMessage(err))
		return err
	}

	for _, title := range result.Titles {
		fmt.Fprintf(deps.Stdout, "  %s\n", title)
	}
	verb := "Removed"
	if c.DryRun {
		verb = "Would remove"
	}
	fmt.Fprintf(deps.Stdout, "%s %d of %d documents\n", verb, result.Removed, result.Scanned)
	return nil
}
