package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Ensure LoggingPageSource implements trivia.PageSource.
var _ trivia.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource with load logging.
type LoggingPageSource struct {
	next   trivia.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next trivia.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// Pages delegates to the wrapped source and logs the page count.
func (s *LoggingPageSource) Pages(ctx context.Context) ([]*trivia.Page, error) {
	begin := time.Now()
	pages, err := s.next.Pages(ctx)
	if err != nil {
		s.logger.Error("load pages failed", "err", err, "duration", time.Since(begin))
		return nil, err
	}
	s.logger.Info("load pages", "count", len(pages), "duration", time.Since(begin))
	return pages, nil
}

// FindPageByTitle delegates to the wrapped source.
func (s *LoggingPageSource) FindPageByTitle(ctx context.Context, title string) (*trivia.Page, error) {
	return s.next.FindPageByTitle(ctx, title)
}
