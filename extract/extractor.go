package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

var (
	linkedYearRe = regexp.MustCompile(`\[\[(\d{4})\]\]`)
	ussRe        = regexp.MustCompile(`\{\{USS\|[^}]+\}\}`)
)

// speciesProseWindow bounds the prose scan for species fallbacks to the
// head of the page, where lead sentences live.
const speciesProseWindow = 5000

// Extractor converts a character page into a document. It owns the full
// pipeline: sidebar attributes, family classification, timeline
// segmentation, appearance scanning, and the signature quote.
type Extractor struct {
	rules        *config.Rules
	norm         *wikitext.Normalizer
	noise        *NoiseFilter
	family       *Classifier
	timeline     *Segmenter
	appearances  *AppearanceScanner
	series       map[string]bool
	species      map[string]bool
	speciesProse []*regexp.Regexp
}

var _ trivia.CharacterExtractor = (*Extractor)(nil)

func NewExtractor(rules *config.Rules, html trivia.HTMLCleaner) *Extractor {
	norm := wikitext.NewNormalizer(rules.Series, html)
	noise := NewNoiseFilter(rules)
	series := make(map[string]bool, len(rules.Series))
	for _, s := range rules.Series {
		series[s] = true
	}
	species := make(map[string]bool, len(rules.KnownSpecies))
	for _, s := range rules.KnownSpecies {
		species[strings.ToLower(s)] = true
	}
	prose := make([]*regexp.Regexp, len(rules.SpeciesProsePatterns))
	for i, p := range rules.SpeciesProsePatterns {
		prose[i] = regexp.MustCompile(p)
	}
	return &Extractor{
		rules:        rules,
		norm:         norm,
		noise:        noise,
		family:       NewClassifier(rules, noise),
		timeline:     NewSegmenter(rules, norm),
		appearances:  NewAppearanceScanner(rules.Series),
		series:       series,
		species:      species,
		speciesProse: prose,
	}
}

// Extract builds the document for page. It returns EUNPROCESSABLE when
// the page yields no timeline and nothing worth keeping, and EINVALID
// when the page is empty.
func (e *Extractor) Extract(page *trivia.Page) (*trivia.Document, error) {
	if page == nil || page.Title == "" {
		return nil, trivia.Errorf(trivia.EINVALID, "page title is required")
	}
	if strings.TrimSpace(page.Text) == "" {
		return nil, trivia.Errorf(trivia.EINVALID, "page %q has no text", page.Title)
	}

	char := trivia.CharacterRecord{Name: page.Title}
	sidebarEnd := -1
	if sb, ok := FindSidebar(page.Text, e.rules.SidebarMarkers); ok {
		e.fillAttributes(&char, sb)
		char.Family = e.family.Classify(sb, page.Title)
		sidebarEnd = sb.End()
	}
	if char.Species == "" {
		char.Species = e.speciesFromProse(page.Text)
	}
	char.Quote = ParseQuote(page.Text)
	char.Description = FindDescription(page.Text, sidebarEnd, e.norm)

	doc := &trivia.Document{
		Title:       page.Title,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(page.Text)),
		ExtractedAt: time.Now().UTC(),
		Character:   char,
		Sections:    e.timeline.Segment(page.Text),
		Appearances: e.appearances.Scan(page.Text),
	}
	if trivia.IsStub(doc) {
		return nil, trivia.Errorf(trivia.EUNPROCESSABLE, "page %q is a stub", page.Title)
	}
	return doc, nil
}

func (e *Extractor) fillAttributes(char *trivia.CharacterRecord, sb *Sidebar) {
	if v, ok := sb.Field("species"); ok {
		char.Species = e.cleanSpecies(v)
	}
	if v, ok := sb.Field("rank"); ok {
		char.Rank = CleanFieldValue(v, e.series)
	}
	if v, ok := sb.Field("occupation"); ok {
		char.Occupation = CleanFieldValue(v, e.series)
	}
	for _, item := range sb.List("affiliation", "affiliations") {
		if v := CleanFieldValue(item, e.series); v != "" {
			char.Affiliations = append(char.Affiliations, v)
		}
	}
	char.Status = e.parseStatus(sb)
	char.Born = e.parseBorn(sb)
	if v, ok := sb.Field("actor", "played by", "portrayed by"); ok {
		char.PortrayedBy = ParseActors(v)
	}
}

// speciesFromProse recovers the species from lead prose when the sidebar
// has no species field. Only known species are accepted, so incidental
// "was a [[Starfleet]] officer" matches never leak in.
func (e *Extractor) speciesFromProse(text string) string {
	if len(text) > speciesProseWindow {
		text = text[:speciesProseWindow]
	}
	for _, re := range e.speciesProse {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			v := strings.ToLower(wikitext.DisplayText(m[1]))
			if e.species[v] {
				return strings.ToUpper(v[:1]) + v[1:]
			}
		}
	}
	return ""
}

// cleanSpecies keeps known species in canonical casing and passes
// through unrecognized single names. Values with digits or implausible
// length are dropped.
func (e *Extractor) cleanSpecies(raw string) string {
	v := CleanFieldValue(raw, e.series)
	if v == "" {
		return ""
	}
	lower := strings.ToLower(v)
	if e.species[lower] {
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
	if len(v) > 30 || strings.ContainsAny(v, "0123456789") {
		return ""
	}
	return v
}

func (e *Extractor) parseStatus(sb *Sidebar) string {
	v, ok := sb.Field("status")
	if !ok {
		return ""
	}
	status := CleanFieldValue(v, e.series)
	if status == "" {
		return ""
	}
	if d, ok := sb.Field("datestatus"); ok {
		if m := yearRe.FindStringSubmatch(d); m != nil {
			return fmt.Sprintf("%s (%s)", status, m[1])
		}
	}
	return status
}

func (e *Extractor) parseBorn(sb *Sidebar) trivia.Born {
	v, ok := sb.Field("born")
	if !ok {
		return trivia.Born{}
	}
	var born trivia.Born
	if m := linkedYearRe.FindStringSubmatch(v); m != nil {
		born.Year, _ = strconv.Atoi(m[1])
	} else if m := yearRe.FindStringSubmatch(v); m != nil {
		born.Year, _ = strconv.Atoi(m[1])
	}
	if loc := ussRe.FindString(v); loc != "" {
		born.Location = templateSubject(loc, e.series)
	} else {
		for _, m := range linkRe.FindAllStringSubmatch(v, -1) {
			if yearOnlyRe.MatchString(m[1]) {
				continue
			}
			born.Location = wikitext.DisplayText(m[1])
			break
		}
	}
	if strings.Contains(born.Location, "|") || len(born.Location) < 2 {
		born.Location = ""
	}
	return born
}
