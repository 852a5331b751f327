package wikitext

import (
	"regexp"
	"strings"

	trivia "github.com/ViewtifulSlayer/trivia-alpha"
)

// CiteStyle controls what the normalizer does with episode citations.
type CiteStyle int

const (
	// CiteRemove drops citation templates entirely; the citation has been
	// captured as structured metadata before normalization.
	CiteRemove CiteStyle = iota

	// CiteRewrite converts citation templates to the canonical phrase
	// (SERIES: "Episode") so the reference survives in prose.
	CiteRewrite
)

var (
	headerPrefixRe = regexp.MustCompile(`^={2,}\s*([^=]+?)\s*={2,}`)
	headerInlineRe = regexp.MustCompile(`={2,}\s*([^=]+?)\s*={2,}`)
	boldItalicRe   = regexp.MustCompile(`''+`)
	thumbRe        = regexp.MustCompile(`(?i)thumb\|[^|]+\|`)
	thumbLeadRe    = regexp.MustCompile(`(?i)^\s*thumb\s*\|`)
	linkRe         = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	orphanOpenRe   = regexp.MustCompile(`\[\[+|\{\{+`)
	orphanCloseRe  = regexp.MustCompile(`\]\]+|\}\}+`)
	malformedRefRe = regexp.MustCompile(`(?i)\([a-z]{2,4}:\s*"[^"]+"\)`)
	emptyParensRe  = regexp.MustCompile(`\s*\(\)\s*`)
	spaceRunRe     = regexp.MustCompile(`\s+`)
	ellipsisRe     = regexp.MustCompile(`\s*\.\s*\.\s*\.`)
)

// Normalizer converts a markup fragment into plain text: links resolve to
// their display text, templates are interpreted or stripped, residual HTML
// is removed, and whitespace collapses.
type Normalizer struct {
	citeRe      *regexp.Regexp
	parenCiteRe *regexp.Regexp
	writtenRe   *regexp.Regexp
	html        trivia.HTMLCleaner
}

// NewNormalizer builds a normalizer for the given series codes. html may be
// nil, in which case residual HTML passes through untouched.
func NewNormalizer(series []string, html trivia.HTMLCleaner) *Normalizer {
	quoted := make([]string, len(series))
	for i, s := range series {
		quoted[i] = regexp.QuoteMeta(s)
	}
	alt := strings.Join(quoted, "|")
	return &Normalizer{
		citeRe:      regexp.MustCompile(`(?i)\{\{(` + alt + `)\|([^}]+)\}\}`),
		parenCiteRe: regexp.MustCompile(`(?i)\(\{\{(` + alt + `)\|([^}]+)\}\}\)`),
		writtenRe:   regexp.MustCompile(`(?i)\(\s*(` + alt + `)\s*:\s*"[^"]+"\s*\)`),
		html:        html,
	}
}

// Normalize renders a markup fragment as plain text. style selects whether
// episode citations are removed or rewritten to the canonical phrase.
func (n *Normalizer) Normalize(text string, style CiteStyle) string {
	if text == "" {
		return ""
	}

	// A fragment starting with its own header keeps the header text as a
	// leading line; headers in the middle collapse to their text.
	if m := headerPrefixRe.FindStringSubmatch(text); m != nil {
		rest := strings.TrimLeft(text[len(m[0]):], " \t\n")
		text = strings.TrimSpace(m[1]) + "\n\n" + rest
	}
	text = headerInlineRe.ReplaceAllString(text, "$1")

	text = boldItalicRe.ReplaceAllString(text, "")

	if style == CiteRewrite {
		rewrite := func(match string) string {
			sub := n.citeRe.FindStringSubmatch(match)
			if sub == nil {
				return match
			}
			episode := sub[2]
			if i := strings.LastIndex(episode, "|"); i >= 0 {
				episode = episode[i+1:]
			}
			return `(` + sub[1] + `: "` + strings.TrimSpace(episode) + `")`
		}
		text = n.parenCiteRe.ReplaceAllStringFunc(text, rewrite)
		text = n.citeRe.ReplaceAllStringFunc(text, rewrite)
	} else {
		text = n.parenCiteRe.ReplaceAllString(text, "")
		text = n.citeRe.ReplaceAllString(text, "")
		text = n.writtenRe.ReplaceAllString(text, "")
	}

	text = thumbRe.ReplaceAllString(text, "")
	text = thumbLeadRe.ReplaceAllString(text, "")

	text = ResolveLinks(text)
	text = StripTemplates(text)

	text = orphanOpenRe.ReplaceAllString(text, "")
	text = orphanCloseRe.ReplaceAllString(text, "")
	text = malformedRefRe.ReplaceAllString(text, "")

	if n.html != nil {
		text = n.html.Clean(text)
	}

	text = emptyParensRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = ellipsisRe.ReplaceAllString(text, "...")
	text = strings.ReplaceAll(text, `\"`, `"`)

	return strings.TrimSpace(text)
}

// DisplayText resolves the content of a link to its human-readable form:
// "target|display" yields display, a bare "target" yields itself. An empty
// display part falls back to the target.
func DisplayText(linkContent string) string {
	target, display, ok := strings.Cut(linkContent, "|")
	if ok {
		if d := strings.TrimSpace(display); d != "" {
			return d
		}
	}
	return strings.TrimSpace(target)
}

// ResolveLinks replaces every [[target|display]] or [[target]] span with
// its display text.
func ResolveLinks(text string) string {
	return linkRe.ReplaceAllStringFunc(text, func(match string) string {
		return DisplayText(match[2 : len(match)-2])
	})
}

// StripTemplates removes every {{...}} region, honoring nesting, using the
// token stream. Unterminated templates swallow the remainder of the
// fragment (the caller has already bounded it).
func StripTemplates(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	var b strings.Builder
	var depth Depth
	for _, tok := range Tokenize(text) {
		before := depth.Template
		depth.Observe(tok)
		if before == 0 && depth.Template == 0 && tok.Kind != TokenTemplateClose {
			b.WriteString(tok.Lexeme)
		}
	}
	return b.String()
}
