// Package fs provides filesystem-backed page input and document output.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Ensure DocumentWriter implements trivia.DocumentWriter at compile time.
var _ trivia.DocumentWriter = (*DocumentWriter)(nil)

var unsafeRe = regexp.MustCompile(`[^a-z0-9_-]`)

// DocumentWriter writes one JSON file per document with atomic update
// semantics: the file is written to a temporary name and renamed into
// place, so readers never observe a partial document.
type DocumentWriter struct {
	dir string
}

// NewDocumentWriter creates a writer targeting dir. The directory is
// created on first write.
func NewDocumentWriter(dir string) *DocumentWriter {
	return &DocumentWriter{dir: dir}
}

// WriteDocument writes doc to <dir>/<safe-title>.json.
func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *trivia.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	final := filepath.Join(w.dir, SafeFilename(documentTitle(doc))+".json")
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, append(body, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, final)
}

// Path returns the file a document for title would be written to.
func (w *DocumentWriter) Path(title string) string {
	return filepath.Join(w.dir, SafeFilename(title)+".json")
}

func documentTitle(doc *trivia.Document) string {
	if doc.Title != "" {
		return doc.Title
	}
	return doc.Character.Name
}

// SafeFilename lowercases a page title and replaces every character
// outside [a-z0-9_-] with an underscore.
func SafeFilename(title string) string {
	return unsafeRe.ReplaceAllString(strings.ToLower(title), "_")
}
