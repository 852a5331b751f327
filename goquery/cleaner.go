// Package goquery strips residual HTML from wiki markup fragments.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	trivia "github.com/ViewtifulSlayer/trivia-alpha"
)

// Ensure Cleaner implements trivia.HTMLCleaner at compile time.
var _ trivia.HTMLCleaner = (*Cleaner)(nil)

var brRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// Cleaner renders a fragment's text content, dropping tags, <ref> subtrees,
// and HTML entities. Fragments without markup pass through untouched.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns the plain-text content of a fragment. <br> variants become
// spaces so adjacent words stay separated; <ref> elements are removed with
// their contents, since footnote bodies are not prose.
func (c *Cleaner) Clean(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	fragment = brRe.ReplaceAllString(fragment, " ")

	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// Unparsable fragments keep their raw text rather than vanish.
		return fragment
	}

	doc := goquery.NewDocumentFromNode(node)
	doc.Find("ref").Remove()
	return doc.Text()
}
