package extract

import (
	"regexp"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

var (
	sectionHeaderRe = regexp.MustCompile(`(?m)^==\s*([^=\n]+?)\s*==`)
	paragraphRe     = regexp.MustCompile(`\n\n+`)
	interwikiWordRe = regexp.MustCompile(`^(?:[a-z]{2,3}:[^\s]+|Category:[^\s]+)$`)
	anyYearRe       = regexp.MustCompile(`\b\d{4}\b`)
)

// Segmenter splits article prose into named timeline sections and
// classifies each paragraph as an event, background, or relationship
// entry.
type Segmenter struct {
	rules *config.Rules
	norm  *wikitext.Normalizer
	cites *wikitext.CitationScanner
	skip  map[string]bool
}

func NewSegmenter(rules *config.Rules, norm *wikitext.Normalizer) *Segmenter {
	skip := make(map[string]bool, len(rules.SkipSections))
	for _, s := range rules.SkipSections {
		skip[s] = true
	}
	return &Segmenter{
		rules: rules,
		norm:  norm,
		cites: wikitext.NewCitationScanner(rules.Series),
		skip:  skip,
	}
}

// Segment walks the level-two headers of text, keeps narrative sections,
// and returns them in article order. Sections whose paragraphs all fail
// classification are dropped.
func (s *Segmenter) Segment(text string) []trivia.Section {
	headers := sectionHeaderRe.FindAllStringSubmatchIndex(text, -1)
	var sections []trivia.Section
	for i, h := range headers {
		name := sectionKey(text[h[2]:h[3]])
		if s.skipSection(name) {
			continue
		}
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		events := s.segmentBody(text[h[1]:end])
		if len(events) > 0 {
			sections = append(sections, trivia.Section{Name: name, Events: events})
		}
	}
	return sections
}

func (s *Segmenter) segmentBody(body string) []trivia.TimelineEvent {
	var events []trivia.TimelineEvent
	for _, para := range paragraphRe.Split(body, -1) {
		para = strings.TrimSpace(para)
		if len(para) < 20 || isInterwikiBlock(para) {
			continue
		}
		cite, hasCite := s.cites.First(para)
		text := s.norm.Normalize(para, wikitext.CiteRemove)
		if len(text) < 10 || isInterwikiBlock(text) {
			continue
		}
		ev := trivia.TimelineEvent{
			ContentType: s.classify(text, hasCite),
			Text:        text,
		}
		if hasCite {
			ev.Series = cite.Series
			ev.Episode = cite.Episode
		}
		events = append(events, ev)
	}
	return events
}

// classify picks a content type for a paragraph. A citation always
// marks an event; otherwise keyword lists decide, with year mentions
// and long paragraphs defaulting to events.
func (s *Segmenter) classify(text string, hasCite bool) trivia.ContentType {
	if hasCite {
		return trivia.ContentEvent
	}
	lower := strings.ToLower(text)
	hasYear := anyYearRe.MatchString(text)
	if !hasYear {
		for _, kw := range s.rules.RelationshipKeywords {
			if strings.Contains(lower, kw) {
				return trivia.ContentRelationship
			}
		}
	}
	for _, kw := range s.rules.BackgroundKeywords {
		if strings.Contains(lower, kw) {
			return trivia.ContentBackground
		}
	}
	if hasYear || len(text) > 100 {
		return trivia.ContentEvent
	}
	return trivia.ContentBackground
}

func (s *Segmenter) skipSection(name string) bool {
	if s.skip[name] {
		return true
	}
	for _, kw := range s.rules.SkipSectionKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func sectionKey(header string) string {
	name := strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(name, " ", "_")
}

// isInterwikiBlock reports whether at least 80% of the words in text are
// interwiki or category links rather than prose.
func isInterwikiBlock(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	matches := 0
	for _, w := range words {
		if interwikiWordRe.MatchString(w) {
			matches++
		}
	}
	return matches*5 >= len(words)*4
}
