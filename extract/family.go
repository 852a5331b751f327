package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

var (
	trailingParenRe = regexp.MustCompile(`\(([^)]*)\)\s*$`)
	viaRe           = regexp.MustCompile(`(?i)via\s+([A-Za-z' ]+)`)
	yearRe          = regexp.MustCompile(`\b(\d{4})\b`)
)

// Classifier builds the family graph from sidebar fields. Single-value
// fields (father, mother) map directly; list fields are routed through
// the ordered relationship-label table, with unroutable labels landing
// in other_relatives with the label preserved.
type Classifier struct {
	rules  *config.Rules
	noise  *NoiseFilter
	series map[string]bool
}

func NewClassifier(rules *config.Rules, noise *NoiseFilter) *Classifier {
	series := make(map[string]bool, len(rules.Series))
	for _, s := range rules.Series {
		series[s] = true
	}
	return &Classifier{rules: rules, noise: noise, series: series}
}

func (c *Classifier) Classify(sb *Sidebar, characterName string) trivia.Family {
	var fam trivia.Family
	if v, ok := sb.Field("father"); ok {
		fam.Father = c.cleanName(v, characterName)
	}
	if v, ok := sb.Field("mother"); ok {
		fam.Mother = c.cleanName(v, characterName)
	}
	c.classifySiblings(&fam, sb, characterName)
	c.classifySpouses(&fam, sb, characterName)
	c.classifyChildren(&fam, sb, characterName)
	for _, item := range sb.List("nephew", "nephews") {
		if name, _ := c.splitItem(item, characterName); name != "" {
			fam.Nephews = appendName(fam.Nephews, name)
		}
	}
	for _, item := range sb.List("niece", "nieces") {
		if name, _ := c.splitItem(item, characterName); name != "" {
			fam.Nieces = appendName(fam.Nieces, name)
		}
	}
	c.classifyRelatives(&fam, sb, characterName)
	return fam
}

func (c *Classifier) classifySiblings(fam *trivia.Family, sb *Sidebar, characterName string) {
	for _, item := range sb.List("sibling", "siblings") {
		name, label := c.splitItem(item, characterName)
		if name == "" {
			continue
		}
		s := trivia.Sibling{Name: name, Relation: "sibling"}
		switch lower := strings.ToLower(label); {
		case strings.Contains(lower, "brother"):
			s.Relation = "brother"
		case strings.Contains(lower, "sister"):
			s.Relation = "sister"
		case strings.Contains(lower, "sibling"):
		case label != "":
			s.Nickname = label
		}
		if !containsName(siblingNames(fam.Siblings), s.Name) {
			fam.Siblings = append(fam.Siblings, s)
		}
	}
}

func (c *Classifier) classifySpouses(fam *trivia.Family, sb *Sidebar, characterName string) {
	for _, item := range sb.List("partner", "spouse", "spouses") {
		name, label := c.splitItem(item, characterName)
		if name == "" {
			continue
		}
		sp := trivia.Spouse{Name: name}
		if status := statusFromLabel(label, c.rules.StatusWords); status != "" {
			sp.Status = status
		} else if label != "" {
			sp.Relation = label
		}
		if !containsName(spouseNames(fam.Spouses), sp.Name) {
			fam.Spouses = append(fam.Spouses, sp)
		}
	}
}

func (c *Classifier) classifyChildren(fam *trivia.Family, sb *Sidebar, characterName string) {
	for _, item := range sb.List("children", "child") {
		name, label := c.splitItem(item, characterName)
		if name == "" {
			continue
		}
		ch := trivia.Child{Name: name}
		if m := viaRe.FindStringSubmatch(label); m != nil {
			ch.Via = strings.TrimSpace(m[1])
			label = strings.TrimSpace(strings.Trim(viaRe.ReplaceAllString(label, ""), ", "))
		}
		switch lower := strings.ToLower(label); {
		case strings.Contains(lower, "daughter"):
			ch.Relation = "daughter"
		case strings.Contains(lower, "son"):
			ch.Relation = "son"
		case label != "":
			ch.Relation = label
		}
		if !containsName(childNames(fam.Children), ch.Name) {
			fam.Children = append(fam.Children, ch)
		}
	}
}

func (c *Classifier) classifyRelatives(fam *trivia.Family, sb *Sidebar, characterName string) {
	for _, item := range sb.List("relative", "relatives", "other relatives") {
		name, label := c.splitItem(item, characterName)
		if name == "" {
			continue
		}
		category := ""
		lower := strings.ToLower(label)
		for _, lr := range c.rules.RelationshipLabels {
			if strings.Contains(lower, lr.Label) {
				category = lr.Category
				break
			}
		}
		// Grandchildren keep a structured via qualifier; every other
		// category is a plain name list.
		rel := trivia.Relative{Name: name}
		if m := viaRe.FindStringSubmatch(label); m != nil {
			rel.Via = strings.TrimSpace(m[1])
		}
		switch category {
		case "grandsons":
			fam.Grandsons = appendRelative(fam.Grandsons, rel)
		case "granddaughters":
			fam.Granddaughters = appendRelative(fam.Granddaughters, rel)
		case "father_in_law":
			if fam.FatherInLaw == "" {
				fam.FatherInLaw = name
			}
		case "mother_in_law":
			if fam.MotherInLaw == "" {
				fam.MotherInLaw = name
			}
		case "sons_in_law":
			fam.SonsInLaw = appendName(fam.SonsInLaw, name)
		case "daughters_in_law":
			fam.DaughtersInLaw = appendName(fam.DaughtersInLaw, name)
		case "brothers_in_law":
			fam.BrothersInLaw = appendName(fam.BrothersInLaw, name)
		case "sisters_in_law":
			fam.SistersInLaw = appendName(fam.SistersInLaw, name)
		case "cousins":
			fam.Cousins = appendName(fam.Cousins, name)
		case "uncles":
			fam.Uncles = appendName(fam.Uncles, name)
		case "aunts":
			fam.Aunts = appendName(fam.Aunts, name)
		case "paternal_grandparents":
			fam.PaternalGrandparents = appendName(fam.PaternalGrandparents, name)
		case "maternal_grandparents":
			fam.MaternalGrandparents = appendName(fam.MaternalGrandparents, name)
		case "great_grandparents":
			fam.GreatGrandparents = appendName(fam.GreatGrandparents, name)
		case "paternal_ancestors":
			fam.PaternalAncestors = appendName(fam.PaternalAncestors, name)
		default:
			if label != "" {
				name = fmt.Sprintf("%s (%s)", name, label)
			}
			fam.OtherRelatives = appendName(fam.OtherRelatives, name)
		}
	}
}

// splitItem separates a raw list item into a cleaned name and its
// trailing parenthetical label. An empty name means the item was noise.
func (c *Classifier) splitItem(item, characterName string) (name, label string) {
	raw := strings.TrimSpace(item)
	if m := trailingParenRe.FindStringSubmatchIndex(raw); m != nil {
		label = strings.TrimSpace(wikitext.StripTemplates(wikitext.ResolveLinks(raw[m[2]:m[3]])))
		raw = strings.TrimSpace(raw[:m[0]])
	}
	name = c.cleanName(raw, characterName)
	return name, label
}

func (c *Classifier) cleanName(raw, characterName string) string {
	v := CleanFieldValue(raw, c.series)
	if v == "" || c.noise.Noise(v) || c.noise.Placeholder(v, characterName) {
		return ""
	}
	return v
}

func statusFromLabel(label string, statusWords []string) string {
	lower := strings.ToLower(label)
	for _, w := range statusWords {
		if strings.Contains(lower, w) {
			if m := yearRe.FindStringSubmatch(label); m != nil {
				return fmt.Sprintf("%s %s", w, m[1])
			}
			return w
		}
	}
	return ""
}

func appendRelative(rels []trivia.Relative, r trivia.Relative) []trivia.Relative {
	for _, have := range rels {
		if strings.EqualFold(have.Name, r.Name) {
			return rels
		}
	}
	return append(rels, r)
}

func appendName(names []string, name string) []string {
	if containsName(names, name) {
		return names
	}
	return append(names, name)
}

func containsName(names []string, name string) bool {
	for _, have := range names {
		if strings.EqualFold(have, name) {
			return true
		}
	}
	return false
}

func siblingNames(ss []trivia.Sibling) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name
	}
	return names
}

func spouseNames(ss []trivia.Spouse) []string {
	names := make([]string, len(ss))
	for i, s := range ss {
		names[i] = s.Name
	}
	return names
}

func childNames(cs []trivia.Child) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}
