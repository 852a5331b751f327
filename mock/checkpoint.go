package mock

import (
	"context"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

var _ trivia.CheckpointService = (*CheckpointService)(nil)

// CheckpointService is a mock implementation of trivia.CheckpointService.
type CheckpointService struct {
	AppendProcessedFn func(ctx context.Context, title string) error
	AppendFailedFn    func(ctx context.Context, title, detail string) error
	ContainsFn        func(ctx context.Context, title string) (bool, error)
	CheckpointFn      func(ctx context.Context) (*trivia.Checkpoint, error)
}

func (s *CheckpointService) AppendProcessed(ctx context.Context, title string) error {
	return s.AppendProcessedFn(ctx, title)
}

func (s *CheckpointService) AppendFailed(ctx context.Context, title, detail string) error {
	return s.AppendFailedFn(ctx, title, detail)
}

func (s *CheckpointService) Contains(ctx context.Context, title string) (bool, error) {
	return s.ContainsFn(ctx, title)
}

func (s *CheckpointService) Checkpoint(ctx context.Context) (*trivia.Checkpoint, error) {
	return s.CheckpointFn(ctx)
}
