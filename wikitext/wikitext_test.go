package wikitext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

func TestTokenize_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text with no markup",
		"{{sidebar|name=[[Worf]]}} led the [[defense|defense of DS9]]",
		"stray closers }} ]] and openers {{ [[",
	}
	for _, in := range inputs {
		var b strings.Builder
		for _, tok := range wikitext.Tokenize(in) {
			b.WriteString(tok.Lexeme)
		}
		assert.Equal(t, in, b.String())
	}
}

func TestTokenize_Kinds(t *testing.T) {
	t.Parallel()

	tokens := wikitext.Tokenize("a{{b[[c]]}}")
	require.Len(t, tokens, 7)
	assert.Equal(t, wikitext.TokenText, tokens[0].Kind)
	assert.Equal(t, wikitext.TokenTemplateOpen, tokens[1].Kind)
	assert.Equal(t, wikitext.TokenLinkOpen, tokens[3].Kind)
	assert.Equal(t, wikitext.TokenLinkClose, tokens[5].Kind)
	assert.Equal(t, wikitext.TokenTemplateClose, tokens[6].Kind)
}

func TestDepth_StrayClosersClampToZero(t *testing.T) {
	t.Parallel()

	var d wikitext.Depth
	for _, tok := range wikitext.Tokenize("}} ]] {{x}}") {
		d.Observe(tok)
	}
	assert.True(t, d.Balanced())
}

func TestBalanced(t *testing.T) {
	t.Parallel()

	t.Run("nested templates", func(t *testing.T) {
		t.Parallel()
		text := "intro {{outer|{{inner}}|tail}} rest"
		start := strings.Index(text, "{{")
		assert.Equal(t, "{{outer|{{inner}}|tail}}", wikitext.Balanced(text, start))
	})

	t.Run("links", func(t *testing.T) {
		t.Parallel()
		text := "[[Jadzia Dax|Dax]] spoke"
		assert.Equal(t, "[[Jadzia Dax|Dax]]", wikitext.Balanced(text, 0))
	})

	t.Run("not on an opener", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, -1, wikitext.BalancedEnd("plain", 0))
		assert.Equal(t, "", wikitext.Balanced("plain", 0))
	})

	t.Run("unterminated caps at fallback window", func(t *testing.T) {
		t.Parallel()
		text := "{{never closes " + strings.Repeat("x", wikitext.FallbackWindow*2)
		end := wikitext.BalancedEnd(text, 0)
		assert.Equal(t, wikitext.FallbackWindow, end)
	})

	t.Run("unterminated short input caps at end of text", func(t *testing.T) {
		t.Parallel()
		text := "{{never closes"
		assert.Equal(t, len(text), wikitext.BalancedEnd(text, 0))
	})
}

func TestDisplayText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Jadzia Dax", "Jadzia Dax"},
		{"Jadzia Dax|Dax", "Dax"},
		{"Jadzia Dax|", "Jadzia Dax"},
		{"  Worf  ", "Worf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wikitext.DisplayText(tt.in), "DisplayText(%q)", tt.in)
	}
}

func TestResolveLinks(t *testing.T) {
	t.Parallel()

	got := wikitext.ResolveLinks("[[Benjamin Sisko]] promoted [[Jadzia Dax|Dax]].")
	assert.Equal(t, "Benjamin Sisko promoted Dax.", got)
}

func TestStripTemplates(t *testing.T) {
	t.Parallel()

	t.Run("nested", func(t *testing.T) {
		t.Parallel()
		got := wikitext.StripTemplates("before {{outer|{{inner}}}} after")
		assert.Equal(t, "before  after", got)
	})

	t.Run("unterminated swallows remainder", func(t *testing.T) {
		t.Parallel()
		got := wikitext.StripTemplates("kept {{never closes and more text")
		assert.Equal(t, "kept ", got)
	})

	t.Run("no templates", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "plain", wikitext.StripTemplates("plain"))
	})
}

func TestCitationScanner(t *testing.T) {
	t.Parallel()

	scanner := wikitext.NewCitationScanner([]string{"TOS", "DS9"})

	t.Run("first", func(t *testing.T) {
		t.Parallel()
		c, ok := scanner.First(`He arrived. ({{DS9|Emissary}})`)
		require.True(t, ok)
		assert.Equal(t, "DS9", c.Series)
		assert.Equal(t, "Emissary", c.Episode)
	})

	t.Run("piped episode keeps display part", func(t *testing.T) {
		t.Parallel()
		c, ok := scanner.First(`({{DS9|Emissary (episode)|Emissary}})`)
		require.True(t, ok)
		assert.Equal(t, "Emissary", c.Episode)
	})

	t.Run("all in order", func(t *testing.T) {
		t.Parallel()
		cites := scanner.All(`({{TOS|The Cage}}) then ({{DS9|The Visitor}})`)
		require.Len(t, cites, 2)
		assert.Equal(t, wikitext.Citation{Series: "TOS", Episode: "The Cage"}, cites[0])
		assert.Equal(t, wikitext.Citation{Series: "DS9", Episode: "The Visitor"}, cites[1])
	})

	t.Run("unknown series ignored", func(t *testing.T) {
		t.Parallel()
		_, ok := scanner.First(`({{VOY|Caretaker}})`)
		assert.False(t, ok)
	})
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	norm := wikitext.NewNormalizer([]string{"TOS", "DS9"}, nil)

	t.Run("links and emphasis", func(t *testing.T) {
		t.Parallel()
		got := norm.Normalize("'''Worf''' served aboard the [[USS Defiant|''Defiant'']].", wikitext.CiteRemove)
		assert.Equal(t, "Worf served aboard the Defiant.", got)
	})

	t.Run("cite remove", func(t *testing.T) {
		t.Parallel()
		got := norm.Normalize(`He took command. ({{DS9|Emissary}})`, wikitext.CiteRemove)
		assert.Equal(t, "He took command.", got)
	})

	t.Run("cite rewrite", func(t *testing.T) {
		t.Parallel()
		got := norm.Normalize(`He took command. ({{DS9|Emissary}})`, wikitext.CiteRewrite)
		assert.Equal(t, `He took command. (DS9: "Emissary")`, got)
	})

	t.Run("leading header kept as line", func(t *testing.T) {
		t.Parallel()
		got := norm.Normalize("== Early life ==\nBorn on Qo'noS.", wikitext.CiteRemove)
		assert.True(t, strings.HasPrefix(got, "Early life"))
		assert.Contains(t, got, "Born on Qo'noS.")
	})

	t.Run("strips unknown templates and orphans", func(t *testing.T) {
		t.Parallel()
		got := norm.Normalize("{{clear}}He left. }} stray", wikitext.CiteRemove)
		assert.Equal(t, "He left. stray", got)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()
		got := norm.Normalize("a\n\n  b   c", wikitext.CiteRemove)
		assert.Equal(t, "a b c", got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", norm.Normalize("", wikitext.CiteRemove))
	})
}
