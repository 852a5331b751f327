package extract

import (
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/wikitext"
)

const quoteMarker = "{{aquote|"

var entityReplacer = strings.NewReplacer(
	"&hellip;", "…",
	"&mdash;", "—",
	"&ndash;", "–",
	"&amp;", "&",
	"&quot;", `"`,
)

// ParseQuote extracts the first {{aquote|text|speaker|year|episode}}
// template from text. The character scan tracks link depth so pipes
// inside [[links]] never split an argument. Quotes shorter than ten
// characters or starting mid-link are rejected.
func ParseQuote(text string) *trivia.Quote {
	start := strings.Index(text, quoteMarker)
	if start < 0 {
		return nil
	}
	parts, ok := quoteArgs(text[start+len(quoteMarker):])
	if !ok || len(parts) < 4 {
		return nil
	}
	quoted := cleanQuoteText(parts[0])
	if len(quoted) <= 10 || strings.HasPrefix(quoted, "[") {
		return nil
	}
	return &trivia.Quote{
		Text:    quoted,
		Source:  strings.TrimSpace(wikitext.ResolveLinks(parts[1])),
		Episode: episodeArg(parts[3]),
	}
}

// quoteArgs splits the argument list of an aquote template, stopping at
// the closing braces. Pipes inside nested [[links]] or {{templates}}
// never split an argument. ok is false when the template never closes.
func quoteArgs(rest string) ([]string, bool) {
	var parts []string
	var cur strings.Builder
	linkDepth, templateDepth := 0, 0
	for i := 0; i < len(rest); {
		switch {
		case strings.HasPrefix(rest[i:], "[["):
			linkDepth++
			cur.WriteString("[[")
			i += 2
		case strings.HasPrefix(rest[i:], "]]"):
			if linkDepth > 0 {
				linkDepth--
			}
			cur.WriteString("]]")
			i += 2
		case strings.HasPrefix(rest[i:], "{{"):
			templateDepth++
			cur.WriteString("{{")
			i += 2
		case strings.HasPrefix(rest[i:], "}}"):
			if templateDepth == 0 && linkDepth == 0 {
				parts = append(parts, cur.String())
				return parts, true
			}
			if templateDepth > 0 {
				templateDepth--
			}
			cur.WriteString("}}")
			i += 2
		case rest[i] == '|' && linkDepth == 0 && templateDepth == 0:
			parts = append(parts, cur.String())
			cur.Reset()
			i++
		default:
			cur.WriteByte(rest[i])
			i++
		}
	}
	return nil, false
}

// episodeArg resolves the episode argument, which is usually a citation
// template like {{DS9|Emissary}}.
func episodeArg(raw string) string {
	v := wikitext.DisplayText(raw)
	return strings.TrimSpace(strings.Trim(v, "{}"))
}

func cleanQuoteText(raw string) string {
	v := wikitext.StripTemplates(wikitext.ResolveLinks(raw))
	v = entityReplacer.Replace(v)
	return strings.TrimSpace(strings.Join(strings.Fields(v), " "))
}
