package extract

import (
	"regexp"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

const descriptionWindow = 3000

var leadParagraphRe = regexp.MustCompile(`(?m)^\s*(?:\{\{[^{}\n]*\}\}\s*)*'{0,5}([A-Z][^\n=]{100,800})`)

// FindDescription pulls the lead paragraph that follows the sidebar.
// Only the first few thousand characters after the infobox are
// considered, and long paragraphs are cut at a sentence boundary.
func FindDescription(text string, sidebarEnd int, norm *wikitext.Normalizer) string {
	if sidebarEnd < 0 || sidebarEnd >= len(text) {
		return ""
	}
	window := text[sidebarEnd:min(sidebarEnd+descriptionWindow, len(text))]
	m := leadParagraphRe.FindStringSubmatch(window)
	if m == nil {
		return ""
	}
	desc := norm.Normalize(m[1], wikitext.CiteRemove)
	if len(desc) > 500 {
		cut := strings.LastIndex(desc[:500], ".")
		if cut > 200 {
			desc = desc[:cut+1]
		} else {
			desc = desc[:500]
		}
	}
	return strings.TrimSpace(desc)
}
