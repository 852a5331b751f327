package mock

import "github.com/ViewtifulSlayer/trivia-alpha"

var _ trivia.HTMLCleaner = (*HTMLCleaner)(nil)

// HTMLCleaner is a mock implementation of trivia.HTMLCleaner.
type HTMLCleaner struct {
	CleanFn func(fragment string) string
}

func (c *HTMLCleaner) Clean(fragment string) string {
	return c.CleanFn(fragment)
}
