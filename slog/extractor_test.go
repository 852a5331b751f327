package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/mock"
	triviaslog "github.com/ViewtifulSlayer/trivia-alpha/slog"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs successful extraction with counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CharacterExtractor{
			ExtractFn: func(page *trivia.Page) (*trivia.Document, error) {
				return &trivia.Document{
					Title:     page.Title,
					Character: trivia.CharacterRecord{Name: page.Title},
					Sections: []trivia.Section{{
						Name:   "career",
						Events: []trivia.TimelineEvent{{ContentType: trivia.ContentEvent, Text: "x"}},
					}},
				}, nil
			},
		}

		e := triviaslog.NewLoggingExtractor(inner, logger)
		doc, err := e.Extract(&trivia.Page{Title: "Odo", Text: "markup"})

		require.NoError(t, err)
		assert.Equal(t, "Odo", doc.Title)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "title=Odo")
		assert.Contains(t, output, "events=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CharacterExtractor{
			ExtractFn: func(page *trivia.Page) (*trivia.Document, error) {
				return nil, trivia.Errorf(trivia.EINTERNAL, "bad markup")
			},
		}

		e := triviaslog.NewLoggingExtractor(inner, logger)
		_, err := e.Extract(&trivia.Page{Title: "Odo"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "extract failed")
		assert.Contains(t, buf.String(), "level=ERROR")
	})

	t.Run("stub rejections are quiet", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.CharacterExtractor{
			ExtractFn: func(page *trivia.Page) (*trivia.Document, error) {
				return nil, trivia.Errorf(trivia.EUNPROCESSABLE, "stub")
			},
		}

		e := triviaslog.NewLoggingExtractor(inner, logger)
		_, err := e.Extract(&trivia.Page{Title: "Morn"})

		require.Error(t, err)
		assert.NotContains(t, buf.String(), "level=ERROR")
	})
}
