// Package mock provides function-field mock implementations of the
// trivia interfaces for use in tests.
package mock

import (
	"context"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

var _ trivia.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of trivia.PageSource.
type PageSource struct {
	PagesFn           func(ctx context.Context) ([]*trivia.Page, error)
	FindPageByTitleFn func(ctx context.Context, title string) (*trivia.Page, error)
}

func (s *PageSource) Pages(ctx context.Context) ([]*trivia.Page, error) {
	return s.PagesFn(ctx)
}

func (s *PageSource) FindPageByTitle(ctx context.Context, title string) (*trivia.Page, error) {
	return s.FindPageByTitleFn(ctx, title)
}
