package main

import (
	"fmt"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/batch"
	"github.com/ViewtifulSlayer/trivia-alpha/extract"
	"github.com/ViewtifulSlayer/trivia-alpha/fs"
	"github.com/ViewtifulSlayer/trivia-alpha/goquery"
	triviaslog "github.com/ViewtifulSlayer/trivia-alpha/slog"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	source := triviaslog.NewLoggingPageSource(newPageSource(c.Dump), deps.Logger)
	extractor := triviaslog.NewLoggingExtractor(
		extract.NewExtractor(deps.Rules, goquery.NewCleaner()),
		deps.Logger,
	)

	runner := &batch.Runner{
		Source:      source,
		Extractor:   extractor,
		Writer:      fs.NewDocumentWriter(c.Out),
		Store:       deps.Documents,
		Rules:       deps.Rules,
		Concurrency: c.Concurrency,
		Limit:       c.Limit,
	}
	if !c.Fresh {
		runner.Checkpoint = deps.Checkpoint
	}

	result, err := runner.Run(deps.Ctx, func(p trivia.ExtractProgress) {
		if p.Err != nil {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", p.Completed, p.Total, p.Title, p.Err)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", trivia.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d documents to %s (%d skipped, %d stubs, %d failed)\n",
		result.Extracted, c.Out, result.Skipped, result.Stubs, result.Failed)
	return nil
}
