// Package extract turns raw wiki markup for a character page into a
// structured document: sidebar attributes, a family graph, segmented
// timeline sections, an appearance index, and a signature quote.
package extract

import (
	"regexp"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

var (
	linkRe = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	brRe   = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// Sidebar is the character infobox region of a page. Fields are looked
// up lazily against the raw markup so unterminated sidebars degrade to
// whatever the fallback window captured.
type Sidebar struct {
	raw string
	end int
}

// FindSidebar locates the first infobox marker from markers
// (case-insensitive) and captures its balanced template region. The
// second return is false when no marker is present.
func FindSidebar(text string, markers []string) (*Sidebar, bool) {
	lower := strings.ToLower(text)
	start := -1
	for _, m := range markers {
		if i := strings.Index(lower, strings.ToLower(m)); i >= 0 && (start < 0 || i < start) {
			start = i
		}
	}
	if start < 0 {
		return nil, false
	}
	end := wikitext.BalancedEnd(text, start)
	if end < 0 {
		end = min(start+wikitext.FallbackWindow, len(text))
	}
	return &Sidebar{raw: text[start:end], end: end}, true
}

// Raw returns the captured markup including the enclosing braces.
func (s *Sidebar) Raw() string { return s.raw }

// End returns the offset in the page text just past the sidebar. The
// lead paragraph of the article starts at or after this point.
func (s *Sidebar) End() int { return s.end }

// Field returns the raw single-line value of the first matching field
// name. The value still contains links and templates.
func (s *Sidebar) Field(names ...string) (string, bool) {
	for _, name := range names {
		re := regexp.MustCompile(`(?i)\|\s*` + regexp.QuoteMeta(name) + `\s*=\s*([^\n]+)`)
		if m := re.FindStringSubmatch(s.raw); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// List returns the items of the first matching multi-line field. The
// scan tracks template depth so a pipe inside {{dis|Sarek|Vulcan}} never
// terminates the field, and stops at the next depth-zero field or the
// sidebar close. Items are split on <br> tags and newlines.
func (s *Sidebar) List(names ...string) []string {
	for _, name := range names {
		if items := s.list(name); items != nil {
			return items
		}
	}
	return nil
}

func (s *Sidebar) list(name string) []string {
	re := regexp.MustCompile(`(?i)\|\s*` + regexp.QuoteMeta(name) + `\s*=`)
	loc := re.FindStringIndex(s.raw)
	if loc == nil {
		return nil
	}
	depth := 0
	i := loc[1]
	end := len(s.raw)
scan:
	for i < len(s.raw) {
		switch {
		case strings.HasPrefix(s.raw[i:], "{{"):
			depth++
			i += 2
		case strings.HasPrefix(s.raw[i:], "}}"):
			if depth == 0 {
				end = i
				break scan
			}
			depth--
			i += 2
		case s.raw[i] == '|' && depth == 0 && looksLikeField(s.raw[i:]):
			end = i
			break scan
		default:
			i++
		}
	}
	region := s.raw[loc[1]:end]
	var items []string
	for _, part := range brRe.Split(region, -1) {
		for _, line := range strings.Split(part, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				items = append(items, line)
			}
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// looksLikeField reports whether rest, starting at a depth-zero pipe,
// opens a new sidebar field. A field has an = within the next 50 chars
// before any newline.
func looksLikeField(rest string) bool {
	window := rest[1:]
	if len(window) > 50 {
		window = window[:50]
	}
	if i := strings.IndexByte(window, '\n'); i >= 0 {
		window = window[:i]
	}
	return strings.ContainsRune(window, '=')
}

// CleanFieldValue resolves a raw sidebar value to a display string. The
// first wiki link wins; a lone template resolves to its subject (ships
// keep their USS prefix, citations keep the episode title); plain text
// is normalized. Values are truncated at the first comma or parenthesis
// and capped at 100 characters.
func CleanFieldValue(raw string, series map[string]bool) string {
	v := strings.TrimSpace(raw)
	if m := linkRe.FindStringSubmatch(v); m != nil {
		v = wikitext.DisplayText(m[1])
	} else if strings.HasPrefix(v, "{{") {
		v = templateSubject(v, series)
	} else {
		v = wikitext.StripTemplates(wikitext.ResolveLinks(v))
	}
	v, _, _ = strings.Cut(v, ",")
	v, _, _ = strings.Cut(v, "(")
	v = strings.TrimSpace(v)
	if len(v) > 100 {
		v = v[:100]
	}
	return v
}

func templateSubject(v string, series map[string]bool) string {
	inner := wikitext.Balanced(v, 0)
	inner = strings.TrimPrefix(inner, "{{")
	inner = strings.TrimSuffix(inner, "}}")
	parts := strings.Split(inner, "|")
	head := strings.TrimSpace(parts[0])
	switch {
	case head == "USS" && len(parts) > 1:
		name := strings.TrimSpace(parts[1])
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			name += "-" + strings.TrimSpace(parts[2])
		}
		return "USS " + name
	case series[head] && len(parts) > 1:
		return wikitext.DisplayText(strings.TrimSpace(parts[len(parts)-1]))
	case len(parts) > 1:
		return strings.TrimSpace(parts[len(parts)-1])
	default:
		return head
	}
}
