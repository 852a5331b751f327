package wikitext

import (
	"regexp"
	"strings"
)

// Citation is one episode reference: a series code paired with an episode
// title.
type Citation struct {
	Series  string
	Episode string
}

// CitationScanner finds episode citations for a known set of series codes.
type CitationScanner struct {
	re *regexp.Regexp
}

// NewCitationScanner compiles a scanner for the given series codes.
func NewCitationScanner(series []string) *CitationScanner {
	quoted := make([]string, len(series))
	for i, s := range series {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return &CitationScanner{
		re: regexp.MustCompile(`\{\{(` + strings.Join(quoted, "|") + `)\|([^}]+)\}\}`),
	}
}

// First returns the first citation in text, if any. Citations are flat
// templates; the raw episode segment keeps only its display part when the
// title itself is a piped link.
func (s *CitationScanner) First(text string) (Citation, bool) {
	m := s.re.FindStringSubmatch(text)
	if m == nil {
		return Citation{}, false
	}
	return Citation{Series: m[1], Episode: episodeTitle(m[2])}, true
}

// All returns every citation in text, in order of appearance.
func (s *CitationScanner) All(text string) []Citation {
	var cites []Citation
	for _, m := range s.re.FindAllStringSubmatch(text, -1) {
		cites = append(cites, Citation{Series: m[1], Episode: episodeTitle(m[2])})
	}
	return cites
}

// episodeTitle reduces a raw citation segment to the episode title: the
// display part of a piped value, with any link markup resolved.
func episodeTitle(raw string) string {
	if i := strings.LastIndex(raw, "|"); i >= 0 {
		raw = raw[i+1:]
	}
	return strings.TrimSpace(ResolveLinks(raw))
}
