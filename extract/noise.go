package extract

import (
	"regexp"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha/config"
)

var yearOnlyRe = regexp.MustCompile(`^\d{4}$`)

// NoiseFilter rejects family-list items that are relationship words,
// status words, bare years, or descriptive fragments rather than names.
type NoiseFilter struct {
	words    map[string]bool
	patterns []*regexp.Regexp
}

func NewNoiseFilter(rules *config.Rules) *NoiseFilter {
	f := &NoiseFilter{words: make(map[string]bool)}
	for _, w := range rules.RelationshipWords {
		f.words[w] = true
	}
	for _, w := range rules.StatusWords {
		f.words[w] = true
	}
	for _, p := range rules.NoisePatterns {
		f.patterns = append(f.patterns, regexp.MustCompile(p))
	}
	return f
}

// Noise reports whether item cannot be a character name.
func (f *NoiseFilter) Noise(item string) bool {
	v := strings.ToLower(strings.TrimSpace(item))
	if len(v) <= 2 || f.words[v] || yearOnlyRe.MatchString(v) {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

// Placeholder reports whether item is a stand-in entry derived from the
// character's own name, like "Worf's father" on Worf's page.
func (f *NoiseFilter) Placeholder(item, characterName string) bool {
	v := strings.ToLower(strings.TrimSpace(item))
	if v == "001" || v == "placeholder" {
		return true
	}
	first, _, _ := strings.Cut(strings.ToLower(characterName), " ")
	if first == "" {
		return false
	}
	for _, suffix := range []string{"father", "mother", "sister", "brother", "family"} {
		if v == first+"'s "+suffix {
			return true
		}
	}
	return false
}
