package mock

import (
	"context"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

var _ trivia.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is a mock implementation of trivia.DocumentStore.
type DocumentStore struct {
	CreateDocumentFn      func(ctx context.Context, doc *trivia.Document) error
	FindDocumentByTitleFn func(ctx context.Context, title string) (*trivia.Document, error)
	FindDocumentsFn       func(ctx context.Context, filter trivia.DocumentFilter) ([]*trivia.Document, error)
	DeleteDocumentFn      func(ctx context.Context, id string) error
}

func (s *DocumentStore) CreateDocument(ctx context.Context, doc *trivia.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentStore) FindDocumentByTitle(ctx context.Context, title string) (*trivia.Document, error) {
	return s.FindDocumentByTitleFn(ctx, title)
}

func (s *DocumentStore) FindDocuments(ctx context.Context, filter trivia.DocumentFilter) ([]*trivia.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

var _ trivia.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of trivia.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *trivia.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *trivia.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}
