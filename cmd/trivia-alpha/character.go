package main

import (
	"encoding/json"
	"fmt"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/extract"
	"github.com/ViewtifulSlayer/trivia-alpha/goquery"
)

// Run executes the character command.
func (c *CharacterCmd) Run(deps *Dependencies) error {
	page, err := newPageSource(c.Dump).FindPageByTitle(deps.Ctx, c.Title)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", trivia.ErrorMessage(err))
		return err
	}

	extractor := extract.NewExtractor(deps.Rules, goquery.NewCleaner())
	doc, err := extractor.Extract(page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", trivia.ErrorMessage(err))
		return err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(body))
	return nil
}
