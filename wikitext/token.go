// Package wikitext parses semi-structured wiki markup: a tokenizer over
// template and link delimiters, a balanced-region boundary matcher, a
// markup-to-plain-text normalizer, and an episode-citation parser.
//
// The markup has no enforced grammar; everything here degrades to a useful
// partial result on malformed input instead of failing.
package wikitext

// TokenKind identifies one token of the delimiter stream.
type TokenKind int

// Token kinds emitted by Tokenize.
const (
	TokenText TokenKind = iota
	TokenTemplateOpen
	TokenTemplateClose
	TokenLinkOpen
	TokenLinkClose
)

// Token is one lexeme of the input. Concatenating the lexemes of a token
// stream reproduces the input exactly.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    int
}

// Tokenize splits text into a flat stream of template-open/close,
// link-open/close, and plain-text tokens in a single pass. Higher-level
// extractors consume this stream instead of re-scanning raw text with
// ad-hoc counters.
func Tokenize(text string) []Token {
	var tokens []Token
	textStart := -1

	flush := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, Token{Kind: TokenText, Lexeme: text[textStart:end], Pos: textStart})
			textStart = -1
		}
	}

	i := 0
	for i < len(text) {
		var kind TokenKind
		switch {
		case hasPrefixAt(text, i, "{{"):
			kind = TokenTemplateOpen
		case hasPrefixAt(text, i, "}}"):
			kind = TokenTemplateClose
		case hasPrefixAt(text, i, "[["):
			kind = TokenLinkOpen
		case hasPrefixAt(text, i, "]]"):
			kind = TokenLinkClose
		default:
			if textStart < 0 {
				textStart = i
			}
			i++
			continue
		}
		flush(i)
		tokens = append(tokens, Token{Kind: kind, Lexeme: text[i : i+2], Pos: i})
		i += 2
	}
	flush(len(text))

	return tokens
}

// Depth tracks template and link nesting across a token stream.
type Depth struct {
	Template int
	Link     int
}

// Observe updates the nesting counters for one token. Closers never push a
// counter below zero, so stray closing delimiters cannot corrupt tracking.
func (d *Depth) Observe(t Token) {
	switch t.Kind {
	case TokenTemplateOpen:
		d.Template++
	case TokenTemplateClose:
		if d.Template > 0 {
			d.Template--
		}
	case TokenLinkOpen:
		d.Link++
	case TokenLinkClose:
		if d.Link > 0 {
			d.Link--
		}
	}
}

// Balanced reports whether both counters are back at zero.
func (d *Depth) Balanced() bool {
	return d.Template == 0 && d.Link == 0
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}
