// Package slog provides logging decorators for trivia services using
// log/slog.
package slog

import (
	"log/slog"
	"time"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Ensure LoggingExtractor implements trivia.CharacterExtractor.
var _ trivia.CharacterExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a CharacterExtractor with per-page logging.
// Stub rejections log at debug level, real failures at error level.
type LoggingExtractor struct {
	next   trivia.CharacterExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next trivia.CharacterExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(page *trivia.Page) (*trivia.Document, error) {
	begin := time.Now()
	doc, err := e.next.Extract(page)
	if err != nil {
		if trivia.ErrorCode(err) == trivia.EUNPROCESSABLE {
			e.logger.Debug("extract skipped stub",
				"title", page.Title,
				"duration", time.Since(begin),
			)
		} else {
			e.logger.Error("extract failed",
				"title", page.Title,
				"err", err,
				"duration", time.Since(begin),
			)
		}
		return nil, err
	}

	e.logger.Info("extract",
		"title", page.Title,
		"sections", len(doc.Sections),
		"events", doc.TimelineEventCount(),
		"appearances", doc.Appearances.Count(),
		"duration", time.Since(begin),
	)
	return doc, nil
}
