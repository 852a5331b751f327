package trivia_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViewtifulSlayer/trivia-alpha"
)

func sampleDocument() *trivia.Document {
	return &trivia.Document{
		Title: "Benjamin Sisko",
		Character: trivia.CharacterRecord{
			Name:    "Benjamin Sisko",
			Species: "Human",
			Rank:    "Captain",
		},
		Sections: []trivia.Section{
			{
				Name: "early_life",
				Events: []trivia.TimelineEvent{{
					ContentType: trivia.ContentBackground,
					Text:        "Born in New Orleans.",
				}},
			},
			{
				Name: "starfleet_career",
				Events: []trivia.TimelineEvent{{
					ContentType: trivia.ContentEvent,
					Text:        "Took command of Deep Space 9.",
					Series:      "DS9",
					Episode:     "Emissary",
				}},
			},
		},
		Appearances: trivia.AppearanceIndex{"DS9": {"Emissary", "The Visitor"}},
	}
}

func TestDocument_MarshalJSON_SectionOrder(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(sampleDocument())
	require.NoError(t, err)

	s := string(body)
	char := strings.Index(s, `"character"`)
	early := strings.Index(s, `"early_life"`)
	career := strings.Index(s, `"starfleet_career"`)
	apps := strings.Index(s, `"appearances"`)

	require.NotEqual(t, -1, char)
	require.NotEqual(t, -1, early)
	require.NotEqual(t, -1, career)
	require.NotEqual(t, -1, apps)
	assert.Less(t, char, early, "character comes first")
	assert.Less(t, early, career, "sections keep page order")
	assert.Less(t, career, apps, "appearances comes last")
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded trivia.Document
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, doc.Character, decoded.Character)
	assert.Equal(t, doc.Sections, decoded.Sections)
	assert.Equal(t, doc.Appearances, decoded.Appearances)
	assert.Equal(t, "Benjamin Sisko", decoded.Title, "title backfilled from character name")
}

func TestTimelineEvent_JSONKeyedByContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType trivia.ContentType
		key         string
	}{
		{trivia.ContentEvent, "event"},
		{trivia.ContentBackground, "background"},
		{trivia.ContentRelationship, "relationship"},
	}
	for _, tt := range tests {
		t.Run(string(tt.contentType), func(t *testing.T) {
			t.Parallel()

			ev := trivia.TimelineEvent{ContentType: tt.contentType, Text: "Something."}
			body, err := json.Marshal(ev)
			require.NoError(t, err)

			var m map[string]string
			require.NoError(t, json.Unmarshal(body, &m))
			assert.Equal(t, "Something.", m[tt.key])

			var back trivia.TimelineEvent
			require.NoError(t, json.Unmarshal(body, &back))
			assert.Equal(t, ev, back)
		})
	}
}

func TestIsStub(t *testing.T) {
	t.Parallel()

	t.Run("no events and no appearances", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character: trivia.CharacterRecord{
				Name:        "Morn",
				Description: "A regular at Quark's bar with a famous appetite.",
			},
		}
		assert.True(t, trivia.IsStub(doc))
	})

	t.Run("appearances alone do not rescue a bare record", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character:   trivia.CharacterRecord{Name: "Morn"},
			Appearances: trivia.AppearanceIndex{"DS9": {"Emissary"}},
		}
		assert.True(t, trivia.IsStub(doc))
	})

	t.Run("bare attributes do not rescue either", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character:   trivia.CharacterRecord{Name: "Morn", Species: "Lurian"},
			Appearances: trivia.AppearanceIndex{"DS9": {"Emissary"}},
		}
		assert.True(t, trivia.IsStub(doc))
	})

	t.Run("description rescues an appearance-only record", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character: trivia.CharacterRecord{
				Name:        "Morn",
				Description: "A regular at Quark's bar with a famous appetite.",
			},
			Appearances: trivia.AppearanceIndex{"DS9": {"Emissary"}},
		}
		assert.False(t, trivia.IsStub(doc))
	})

	t.Run("events rescue regardless of everything else", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character: trivia.CharacterRecord{Name: "Morn"},
			Sections: []trivia.Section{{Name: "career", Events: []trivia.TimelineEvent{
				{ContentType: trivia.ContentEvent, Text: "Won the station lottery."},
			}}},
		}
		assert.False(t, trivia.IsStub(doc))
	})
}

func TestIsMinimal(t *testing.T) {
	t.Parallel()

	event := trivia.TimelineEvent{ContentType: trivia.ContentEvent, Text: "x"}

	t.Run("no events", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character:   trivia.CharacterRecord{Name: "Morn"},
			Appearances: trivia.AppearanceIndex{"DS9": {"Emissary", "The Visitor"}},
		}
		assert.True(t, trivia.IsMinimal(doc))
	})

	t.Run("single appearance with two events", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character:   trivia.CharacterRecord{Name: "Tora Ziyal"},
			Sections:    []trivia.Section{{Name: "career", Events: []trivia.TimelineEvent{event, event}}},
			Appearances: trivia.AppearanceIndex{"DS9": {"The Homecoming"}},
		}
		assert.True(t, trivia.IsMinimal(doc))
	})

	t.Run("rich document", func(t *testing.T) {
		t.Parallel()
		assert.False(t, trivia.IsMinimal(sampleDocument()))
	})
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a character name", func(t *testing.T) {
		t.Parallel()
		err := (&trivia.Document{}).Validate()
		assert.Equal(t, trivia.EINVALID, trivia.ErrorCode(err))
	})

	t.Run("requires event content types", func(t *testing.T) {
		t.Parallel()
		doc := &trivia.Document{
			Character: trivia.CharacterRecord{Name: "Odo"},
			Sections:  []trivia.Section{{Name: "career", Events: []trivia.TimelineEvent{{Text: "x"}}}},
		}
		err := doc.Validate()
		assert.Equal(t, trivia.EINVALID, trivia.ErrorCode(err))
	})

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, sampleDocument().Validate())
	})
}

func TestFamily_Empty(t *testing.T) {
	t.Parallel()

	empty := trivia.Family{}
	assert.True(t, empty.Empty())

	withFather := trivia.Family{Father: "Sarek"}
	assert.False(t, withFather.Empty())

	withNephew := trivia.Family{Nephews: []string{"Nog"}}
	assert.False(t, withNephew.Empty())
}
