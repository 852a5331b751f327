package fs

import (
	"context"
	"encoding/json"
	"os"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Ensure PageSource implements trivia.PageSource at compile time.
var _ trivia.PageSource = (*PageSource)(nil)

// PageSource reads pages from a JSON dump file of the form
// {"pages": [{"title": "...", "full_text": "..."}]}. The dump is read
// once and cached for the lifetime of the source.
type PageSource struct {
	path  string
	pages []*trivia.Page
}

// NewPageSource creates a source reading from path.
func NewPageSource(path string) *PageSource {
	return &PageSource{path: path}
}

type dumpFile struct {
	Pages []dumpPage `json:"pages"`
}

type dumpPage struct {
	Title    string `json:"title"`
	FullText string `json:"full_text"`
}

// Pages returns every page in the dump. It returns EINVALID when the
// dump has no pages.
func (s *PageSource) Pages(ctx context.Context) ([]*trivia.Page, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.pages, nil
}

// FindPageByTitle returns the page with an exact title match.
func (s *PageSource) FindPageByTitle(ctx context.Context, title string) (*trivia.Page, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	for _, p := range s.pages {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, trivia.Errorf(trivia.ENOTFOUND, "page %q not found", title)
}

func (s *PageSource) load(ctx context.Context) error {
	if s.pages != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buf, err := os.ReadFile(s.path)
	if err != nil {
		return trivia.Errorf(trivia.EINVALID, "read page dump: %v", err)
	}

	var dump dumpFile
	if err := json.Unmarshal(buf, &dump); err != nil {
		return trivia.Errorf(trivia.EINVALID, "parse page dump %s: %v", s.path, err)
	}
	if len(dump.Pages) == 0 {
		return trivia.Errorf(trivia.EINVALID, "page dump %s contains no pages", s.path)
	}

	pages := make([]*trivia.Page, 0, len(dump.Pages))
	for _, p := range dump.Pages {
		pages = append(pages, &trivia.Page{Title: p.Title, Text: p.FullText})
	}
	s.pages = pages
	return nil
}
