package batch_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/batch"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/mock"
)

const characterBody = "{{sidebar individual\n|actor = [[Someone]]\n}}\nprose"

func characterPage(title string) *trivia.Page {
	return &trivia.Page{Title: title, Text: characterBody}
}

// memoryCheckpoint is a thread-safe in-memory ledger for runner tests.
type memoryCheckpoint struct {
	mu        sync.Mutex
	processed []string
	failed    map[string]string
}

func newMemoryCheckpoint(processed ...string) *memoryCheckpoint {
	return &memoryCheckpoint{processed: processed, failed: make(map[string]string)}
}

func (m *memoryCheckpoint) service() *mock.CheckpointService {
	return &mock.CheckpointService{
		AppendProcessedFn: func(_ context.Context, title string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			for _, have := range m.processed {
				if have == title {
					return nil
				}
			}
			m.processed = append(m.processed, title)
			return nil
		},
		AppendFailedFn: func(_ context.Context, title, detail string) error {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.failed[title] = detail
			return nil
		},
		ContainsFn: func(_ context.Context, title string) (bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			for _, have := range m.processed {
				if have == title {
					return true, nil
				}
			}
			return false, nil
		},
		CheckpointFn: func(_ context.Context) (*trivia.Checkpoint, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			return &trivia.Checkpoint{
				Processed: append([]string(nil), m.processed...),
				Failed:    m.failed,
			}, nil
		},
	}
}

func extractorReturning(doc func(page *trivia.Page) (*trivia.Document, error)) *mock.CharacterExtractor {
	return &mock.CharacterExtractor{ExtractFn: doc}
}

func richDocument(page *trivia.Page) (*trivia.Document, error) {
	return &trivia.Document{
		Title:     page.Title,
		Character: trivia.CharacterRecord{Name: page.Title},
		Sections: []trivia.Section{{
			Name:   "career",
			Events: []trivia.TimelineEvent{{ContentType: trivia.ContentEvent, Text: "Did a thing."}},
		}},
	}, nil
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts character pages and records them", func(t *testing.T) {
		t.Parallel()

		var written sync.Map
		ledger := newMemoryCheckpoint()
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return []*trivia.Page{
					characterPage("Benjamin Sisko"),
					characterPage("Kira Nerys"),
					{Title: "Starfleet uniform list", Text: characterBody},
				}, nil
			}},
			Extractor: extractorReturning(richDocument),
			Writer: &mock.DocumentWriter{WriteDocumentFn: func(_ context.Context, doc *trivia.Document) error {
				written.Store(doc.Title, true)
				return nil
			}},
			Checkpoint: ledger.service(),
			Rules:      config.Default(),
		}

		result, err := r.Run(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Extracted)
		assert.Equal(t, 1, result.Skipped, "list title fails the character gate")
		assert.Zero(t, result.Failed)
		assert.ElementsMatch(t, []string{"Benjamin Sisko", "Kira Nerys"}, ledger.processed)

		_, ok := written.Load("Benjamin Sisko")
		assert.True(t, ok)
	})

	t.Run("resumes past already-processed titles", func(t *testing.T) {
		t.Parallel()

		ledger := newMemoryCheckpoint("Benjamin Sisko")
		var extracted []string
		var mu sync.Mutex
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return []*trivia.Page{characterPage("Benjamin Sisko"), characterPage("Kira Nerys")}, nil
			}},
			Extractor: extractorReturning(func(page *trivia.Page) (*trivia.Document, error) {
				mu.Lock()
				extracted = append(extracted, page.Title)
				mu.Unlock()
				return richDocument(page)
			}),
			Checkpoint: ledger.service(),
			Rules:      config.Default(),
		}

		result, err := r.Run(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Extracted)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, []string{"Kira Nerys"}, extracted)
	})

	t.Run("stubs are counted but never enter the ledger", func(t *testing.T) {
		t.Parallel()

		ledger := newMemoryCheckpoint()
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return []*trivia.Page{characterPage("Morn")}, nil
			}},
			Extractor: extractorReturning(func(page *trivia.Page) (*trivia.Document, error) {
				return nil, trivia.Errorf(trivia.EUNPROCESSABLE, "page %q is a stub", page.Title)
			}),
			Checkpoint: ledger.service(),
			Rules:      config.Default(),
		}

		result, err := r.Run(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Stubs)
		assert.Empty(t, ledger.processed)
		assert.Empty(t, ledger.failed)
	})

	t.Run("failures are recorded with detail", func(t *testing.T) {
		t.Parallel()

		ledger := newMemoryCheckpoint()
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return []*trivia.Page{characterPage("Borg Queen")}, nil
			}},
			Extractor: extractorReturning(func(page *trivia.Page) (*trivia.Document, error) {
				return nil, trivia.Errorf(trivia.EINTERNAL, "unterminated sidebar")
			}),
			Checkpoint: ledger.service(),
			Rules:      config.Default(),
		}

		result, err := r.Run(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, ledger.failed["Borg Queen"], "unterminated sidebar")
	})

	t.Run("a panicking page fails its slot, not the run", func(t *testing.T) {
		t.Parallel()

		ledger := newMemoryCheckpoint()
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return []*trivia.Page{characterPage("Broken"), characterPage("Kira Nerys")}, nil
			}},
			Extractor: extractorReturning(func(page *trivia.Page) (*trivia.Document, error) {
				if page.Title == "Broken" {
					panic("boom")
				}
				return richDocument(page)
			}),
			Checkpoint:  ledger.service(),
			Rules:       config.Default(),
			Concurrency: 1,
		}

		result, err := r.Run(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Extracted)
		assert.Contains(t, ledger.failed["Broken"], "panic")
	})

	t.Run("limit is never exceeded with workers in flight", func(t *testing.T) {
		t.Parallel()

		pages := make([]*trivia.Page, 8)
		for i := range pages {
			pages[i] = characterPage("Character " + string(rune('A'+i)))
		}
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return pages, nil
			}},
			Extractor:   extractorReturning(richDocument),
			Rules:       config.Default(),
			Concurrency: 4,
			Limit:       2,
		}

		result, err := r.Run(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Extracted)
	})

	t.Run("progress reports every page", func(t *testing.T) {
		t.Parallel()

		var events []trivia.ExtractProgress
		var mu sync.Mutex
		r := &batch.Runner{
			Source: &mock.PageSource{PagesFn: func(context.Context) ([]*trivia.Page, error) {
				return []*trivia.Page{characterPage("Benjamin Sisko"), characterPage("Kira Nerys")}, nil
			}},
			Extractor: extractorReturning(richDocument),
			Rules:     config.Default(),
		}

		_, err := r.Run(context.Background(), func(p trivia.ExtractProgress) {
			mu.Lock()
			events = append(events, p)
			mu.Unlock()
		})
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, 2, events[1].Completed)
		assert.Equal(t, 2, events[1].Total)
	})
}
