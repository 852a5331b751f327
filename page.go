package trivia

import "context"

// Page is one raw wiki page: a title and its unparsed markup text.
type Page struct {
	Title string
	Text  string
}

// PageSource supplies (title, raw markup) pairs pre-extracted from a bulk
// dump. Implementations hide the dump format.
type PageSource interface {
	// Pages returns every page in the collection, in dump order.
	// Returns EINVALID if the collection is empty or unreadable.
	Pages(ctx context.Context) ([]*Page, error)

	// FindPageByTitle retrieves one page by its exact title.
	// Returns ENOTFOUND if the title is absent from the collection.
	FindPageByTitle(ctx context.Context, title string) (*Page, error)
}

// CharacterExtractor turns one page into an assembled document.
// Extraction is a pure function of the page text; implementations return
// EUNPROCESSABLE when the page yields only a stub record.
type CharacterExtractor interface {
	Extract(page *Page) (*Document, error)
}

// ExtractProgress reports progress during a batch extraction run.
type ExtractProgress struct {
	Title     string
	Completed int
	Total     int
	Skipped   bool
	Err       error
}

// ExtractProgressFunc is called as pages are processed.
type ExtractProgressFunc func(ExtractProgress)
