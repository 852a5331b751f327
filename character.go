package trivia

// CharacterRecord holds the attributes extracted from one character page.
// It marshals as the "character" key of a Document.
type CharacterRecord struct {
	Name         string   `json:"name"`
	Species      string   `json:"species,omitempty"`
	Rank         string   `json:"rank,omitempty"`
	Occupation   string   `json:"occupation,omitempty"`
	Status       string   `json:"status,omitempty"`
	Affiliations []string `json:"affiliation,omitempty"`
	Born         Born     `json:"born,omitzero"`
	Family       Family   `json:"family,omitzero"`
	PortrayedBy  []Actor  `json:"portrayed_by,omitempty"`
	Description  string   `json:"description,omitempty"`
	Quote        *Quote   `json:"quote,omitempty"`
}

// Born holds birth year and location when the sidebar carries them.
type Born struct {
	Year     int    `json:"year,omitempty"`
	Location string `json:"location,omitempty"`
}

// Actor is one portrayed-by entry. Role distinguishes multiple actors
// playing the same character (primary, infant, adult version).
type Actor struct {
	Actor string `json:"actor"`
	Role  string `json:"role,omitempty"`
}

// Quote is the representative quotation parsed from a citation template.
type Quote struct {
	Text    string `json:"text"`
	Source  string `json:"source,omitempty"`
	Episode string `json:"episode,omitempty"`
}

// Sibling is one sibling entry. Relation is the label from the sidebar
// (brother, sister, sibling); Nickname is kept when the markup carries one.
type Sibling struct {
	Name     string `json:"name"`
	Relation string `json:"relationship,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// Spouse is one spouse or partner entry. Status records a literal deceased
// marker, with year when present ("deceased 2372").
type Spouse struct {
	Name     string `json:"name"`
	Relation string `json:"relationship,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Child is one child entry. Via names the other parent when the markup
// qualifies the entry ("via Jadzia").
type Child struct {
	Name     string `json:"name"`
	Relation string `json:"relationship,omitempty"`
	Via      string `json:"via,omitempty"`
}

// Relative is a named relative with an optional via qualifier, used for
// grandchild categories.
type Relative struct {
	Name string `json:"name"`
	Via  string `json:"via,omitempty"`
}

// Family is the typed relationship graph parsed from the sidebar family
// fields and the catch-all relative field. Names are free-text strings
// local to one record; no identity resolution happens here.
type Family struct {
	Father   string    `json:"father,omitempty"`
	Mother   string    `json:"mother,omitempty"`
	Siblings []Sibling `json:"siblings,omitempty"`
	Spouses  []Spouse  `json:"spouses,omitempty"`
	Children []Child   `json:"children,omitempty"`

	Grandsons      []Relative `json:"grandsons,omitempty"`
	Granddaughters []Relative `json:"granddaughters,omitempty"`

	FatherInLaw          string   `json:"father_in_law,omitempty"`
	MotherInLaw          string   `json:"mother_in_law,omitempty"`
	SonsInLaw            []string `json:"sons_in_law,omitempty"`
	DaughtersInLaw       []string `json:"daughters_in_law,omitempty"`
	BrothersInLaw        []string `json:"brothers_in_law,omitempty"`
	SistersInLaw         []string `json:"sisters_in_law,omitempty"`
	Cousins              []string `json:"cousins,omitempty"`
	Uncles               []string `json:"uncles,omitempty"`
	Aunts                []string `json:"aunts,omitempty"`
	Nephews              []string `json:"nephews,omitempty"`
	Nieces               []string `json:"nieces,omitempty"`
	PaternalGrandparents []string `json:"paternal_grandparents,omitempty"`
	MaternalGrandparents []string `json:"maternal_grandparents,omitempty"`
	GreatGrandparents    []string `json:"great_grandparents,omitempty"`
	PaternalAncestors    []string `json:"paternal_ancestors,omitempty"`
	OtherRelatives       []string `json:"other_relatives,omitempty"`
}

// Empty reports whether no relationship of any category was extracted.
func (f *Family) Empty() bool {
	return f.Father == "" && f.Mother == "" &&
		len(f.Siblings) == 0 && len(f.Spouses) == 0 && len(f.Children) == 0 &&
		len(f.Grandsons) == 0 && len(f.Granddaughters) == 0 &&
		f.FatherInLaw == "" && f.MotherInLaw == "" &&
		len(f.SonsInLaw) == 0 && len(f.DaughtersInLaw) == 0 &&
		len(f.BrothersInLaw) == 0 && len(f.SistersInLaw) == 0 &&
		len(f.Cousins) == 0 && len(f.Uncles) == 0 && len(f.Aunts) == 0 &&
		len(f.Nephews) == 0 && len(f.Nieces) == 0 &&
		len(f.PaternalGrandparents) == 0 && len(f.MaternalGrandparents) == 0 &&
		len(f.GreatGrandparents) == 0 && len(f.PaternalAncestors) == 0 &&
		len(f.OtherRelatives) == 0
}

// Validate returns an error if the record is missing required fields.
func (c *CharacterRecord) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "character name required")
	}
	return nil
}
