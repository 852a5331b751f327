// Package etree provides a page source backed by MediaWiki XML export
// files.
package etree

import (
	"context"
	"os"

	"github.com/beevik/etree"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

// Ensure PageSource implements trivia.PageSource at compile time.
var _ trivia.PageSource = (*PageSource)(nil)

// PageSource reads pages from a MediaWiki XML export. Each <page>
// element contributes its <title> and the text of its latest
// <revision>. The export is parsed once and cached.
type PageSource struct {
	path  string
	pages []*trivia.Page
}

// NewPageSource creates a source reading from an XML export at path.
func NewPageSource(path string) *PageSource {
	return &PageSource{path: path}
}

// Pages returns every page in the export. It returns EINVALID when the
// export has no pages.
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

	f, err := os.Open(s.path)
	if err != nil {
		return trivia.Errorf(trivia.EINVALID, "open export: %v", err)
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return trivia.Errorf(trivia.EINVALID, "parse export %s: %v", s.path, err)
	}

	root := doc.Root()
	if root == nil {
		return trivia.Errorf(trivia.EINVALID, "export %s has no root element", s.path)
	}

	var pages []*trivia.Page
	for _, pageEl := range root.SelectElements("page") {
		titleEl := pageEl.SelectElement("title")
		if titleEl == nil {
			continue
		}
		text := ""
		if rev := pageEl.SelectElement("revision"); rev != nil {
			if textEl := rev.SelectElement("text"); textEl != nil {
				text = textEl.Text()
			}
		}
		pages = append(pages, &trivia.Page{Title: titleEl.Text(), Text: text})
	}
	if len(pages) == 0 {
		return trivia.Errorf(trivia.EINVALID, "export %s contains no pages", s.path)
	}

	s.pages = pages
	return nil
}
