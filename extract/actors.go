package extract

import (
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

var invalidActorNames = map[string]bool{
	"unknown":    true,
	"photograph": true,
	"image":      true,
	"photo":      true,
	"picture":    true,
	"n/a":        true,
	"none":       true,
}

// ParseActors reads the sidebar actor field. The first credited actor
// is the primary performer; parenthetical markers override the role for
// recast entries like "(infant)" or "(adult)". "A and B" entries credit
// both performers with the same role.
func ParseActors(field string) []trivia.Actor {
	var actors []trivia.Actor
	for i, entry := range brRe.Split(field, -1) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		role := defaultRole(i)
		if m := trailingParenRe.FindStringSubmatch(entry); m != nil {
			if r := roleFromMarker(m[1]); r != "" {
				role = r
			}
			entry = strings.TrimSpace(trailingParenRe.ReplaceAllString(entry, ""))
		}
		for _, name := range splitActorNames(entry) {
			if name == "" || invalidActorNames[strings.ToLower(name)] {
				continue
			}
			actors = append(actors, trivia.Actor{Actor: name, Role: role})
		}
	}
	return actors
}

func defaultRole(i int) string {
	if i == 0 {
		return "primary"
	}
	return "additional"
}

func roleFromMarker(marker string) string {
	lower := strings.ToLower(marker)
	switch {
	case strings.Contains(lower, "primary"):
		return "primary"
	case strings.Contains(lower, "infant"):
		return "infant"
	case strings.Contains(lower, "adult"):
		return "adult"
	default:
		return ""
	}
}

func splitActorNames(entry string) []string {
	var names []string
	for _, part := range strings.Split(entry, " and ") {
		name := cleanActorName(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func cleanActorName(raw string) string {
	v := strings.TrimSpace(raw)
	if m := linkRe.FindStringSubmatch(v); m != nil {
		v = wikitext.DisplayText(m[1])
	} else {
		v = wikitext.StripTemplates(wikitext.ResolveLinks(v))
	}
	return strings.TrimSpace(v)
}
