package mock

import "github.com/ViewtifulSlayer/trivia-alpha"

var _ trivia.CharacterExtractor = (*CharacterExtractor)(nil)

// CharacterExtractor is a mock implementation of trivia.CharacterExtractor.
type CharacterExtractor struct {
	ExtractFn func(page *trivia.Page) (*trivia.Document, error)
}

func (e *CharacterExtractor) Extract(page *trivia.Page) (*trivia.Document, error) {
	return e.ExtractFn(page)
}
