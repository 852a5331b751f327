package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Compile-time interface verification.
var _ trivia.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements trivia.DocumentStore using SQLite. The
// assembled document is stored as its JSON wire format alongside lookup
// metadata, so the maintenance pass can inspect event counts without
// unmarshaling every body.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// CreateDocument stores a new document, assigning its ID and, when
// unset, the content hash and extraction timestamp.
func (s *DocumentStore) CreateDocument(ctx context.Context, doc *trivia.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document body: %w", err)
	}

	doc.ID = uuid.New().String()
	if doc.Title == "" {
		doc.Title = doc.Character.Name
	}
	if doc.ExtractedAt.IsZero() {
		doc.ExtractedAt = time.Now().UTC()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64(body))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, body, content_hash, event_count, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, string(body), doc.ContentHash,
		doc.TimelineEventCount(), doc.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByTitle retrieves a document by page title.
func (s *DocumentStore) FindDocumentByTitle(ctx context.Context, title string) (*trivia.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, content_hash, extracted_at
		FROM documents
		WHERE title = ?
	`, title)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, trivia.Errorf(trivia.ENOTFOUND, "document not found")
	}
	return doc, err
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentStore) FindDocuments(ctx context.Context, filter trivia.DocumentFilter) ([]*trivia.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, body, content_hash, extracted_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY extracted_at DESC, title ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*trivia.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentStore) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return trivia.Errorf(trivia.ENOTFOUND, "document not found")
	}

	return nil
}

func scanDocument(scan func(dest ...any) error) (*trivia.Document, error) {
	var id, title, body, contentHash, extractedAt string
	if err := scan(&id, &title, &body, &contentHash, &extractedAt); err != nil {
		return nil, err
	}

	var doc trivia.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document body: %w", err)
	}
	doc.ID = id
	doc.Title = title
	doc.ContentHash = contentHash

	t, err := time.Parse(time.RFC3339, extractedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted_at: %w", err)
	}
	doc.ExtractedAt = t

	return &doc, nil
}
