package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

var (
	episodeItemRe  = regexp.MustCompile(`\{\{e\|([^}]+)\}\}`)
	trailingNoteRe = regexp.MustCompile(`\s*\([^)]+\)\s*$`)
	nextMarkerRe   = regexp.MustCompile(`\*\s*\{\{[A-Z]`)
)

// AppearanceScanner collects episode titles per series from the two
// list styles a page may use: a bulleted series marker followed by
// {{e|Episode}} items, and inline {{SERIES|Episode}} citations. The
// union of both is kept, so scanning a page that uses both styles for
// the same episode yields one entry.
type AppearanceScanner struct {
	series  []string
	cites   *wikitext.CitationScanner
	markers map[string]*regexp.Regexp
}

func NewAppearanceScanner(series []string) *AppearanceScanner {
	markers := make(map[string]*regexp.Regexp, len(series))
	for _, s := range series {
		markers[s] = regexp.MustCompile(`\*\s*\{\{` + regexp.QuoteMeta(s) + `\}\}`)
	}
	return &AppearanceScanner{
		series:  series,
		cites:   wikitext.NewCitationScanner(series),
		markers: markers,
	}
}

// Scan returns the appearance index for text. Episodes are deduplicated
// case-insensitively keeping the first casing seen, sorted
// alphabetically, and series with no episodes are omitted.
func (a *AppearanceScanner) Scan(text string) trivia.AppearanceIndex {
	idx := make(trivia.AppearanceIndex)
	for _, s := range a.series {
		seen := make(map[string]bool)
		var episodes []string
		add := func(title string) {
			title = strings.TrimSpace(trailingNoteRe.ReplaceAllString(title, ""))
			if title == "" || seen[strings.ToLower(title)] {
				return
			}
			seen[strings.ToLower(title)] = true
			episodes = append(episodes, title)
		}
		for _, title := range a.scopedEpisodes(text, s) {
			add(title)
		}
		for _, c := range a.cites.All(text) {
			if c.Series == s {
				add(c.Episode)
			}
		}
		if len(episodes) > 0 {
			sort.Slice(episodes, func(i, j int) bool {
				return strings.ToLower(episodes[i]) < strings.ToLower(episodes[j])
			})
			idx[s] = episodes
		}
	}
	if len(idx) == 0 {
		return nil
	}
	return idx
}

// scopedEpisodes finds the bulleted marker for series and collects the
// {{e|...}} items up to the next series marker.
func (a *AppearanceScanner) scopedEpisodes(text, series string) []string {
	loc := a.markers[series].FindStringIndex(text)
	if loc == nil {
		return nil
	}
	scope := text[loc[1]:]
	if next := nextMarkerRe.FindStringIndex(scope); next != nil {
		scope = scope[:next[0]]
	}
	var titles []string
	for _, m := range episodeItemRe.FindAllStringSubmatch(scope, -1) {
		titles = append(titles, wikitext.DisplayText(m[1]))
	}
	return titles
}
