// Package config holds the data-driven extraction rules: series codes,
// sidebar markers, the relationship-label routing table, noise patterns,
// and classification keyword lists. Defaults are embedded; a YAML file
// can override any table wholesale.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// LabelRule routes a relationship label found in parentheses after a
// family-list name to a family category. Rules are checked in order, so
// compound labels must precede any shorter label they contain.
type LabelRule struct {
	Label    string `yaml:"label"`
	Category string `yaml:"category"`
}

// Rules is the full rule set consumed by the extract package.
type Rules struct {
	Series               []string    `yaml:"series"`
	SidebarMarkers       []string    `yaml:"sidebar_markers"`
	SidebarIndicators    []string    `yaml:"sidebar_indicators"`
	KnownSpecies         []string    `yaml:"known_species"`
	SpeciesProsePatterns []string    `yaml:"species_prose_patterns"`
	SkipSections         []string    `yaml:"skip_sections"`
	SkipSectionKeywords  []string    `yaml:"skip_section_keywords"`
	RelationshipLabels   []LabelRule `yaml:"relationship_labels"`
	RelationshipWords    []string    `yaml:"relationship_words"`
	StatusWords          []string    `yaml:"status_words"`
	NoisePatterns        []string    `yaml:"noise_patterns"`
	RelationshipKeywords []string    `yaml:"relationship_keywords"`
	BackgroundKeywords   []string    `yaml:"background_keywords"`
	TitleExclusions      []string    `yaml:"title_exclusions"`
}

// Default returns the embedded rule set. The embedded file is validated
// at init time, so a parse failure here is a build defect.
func Default() *Rules {
	r, err := parse(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return r
}

// Load reads a rule file from disk. Tables present in the file replace
// the embedded defaults entirely; absent tables keep the defaults.
func Load(path string) (*Rules, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, trivia.Errorf(trivia.EINVALID, "read rules file: %v", err)
	}
	r := Default()
	if err := yaml.Unmarshal(buf, r); err != nil {
		return nil, trivia.Errorf(trivia.EINVALID, "parse rules file %s: %v", path, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func parse(buf []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(buf, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks that every table the engine depends on is non-empty
// and every configured pattern compiles.
func (r *Rules) Validate() error {
	switch {
	case len(r.Series) == 0:
		return trivia.Errorf(trivia.EINVALID, "rules: series list is empty")
	case len(r.SidebarMarkers) == 0:
		return trivia.Errorf(trivia.EINVALID, "rules: sidebar marker list is empty")
	case len(r.RelationshipLabels) == 0:
		return trivia.Errorf(trivia.EINVALID, "rules: relationship label table is empty")
	}
	for _, p := range r.NoisePatterns {
		if _, err := regexp.Compile(p); err != nil {
			return trivia.Errorf(trivia.EINVALID, "rules: noise pattern %q: %v", p, err)
		}
	}
	for _, p := range r.SpeciesProsePatterns {
		if _, err := regexp.Compile(p); err != nil {
			return trivia.Errorf(trivia.EINVALID, "rules: species prose pattern %q: %v", p, err)
		}
	}
	for _, lr := range r.RelationshipLabels {
		if lr.Label == "" || lr.Category == "" {
			return trivia.Errorf(trivia.EINVALID, "rules: relationship label entry missing label or category")
		}
	}
	return nil
}
