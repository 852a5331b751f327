package wikitext

// FallbackWindow is the maximum region returned when a delimiter never
// closes. Unterminated markup must not consume the unbounded remainder of
// a page.
const FallbackWindow = 5000

// Balanced returns the region of text starting at the opening "{{" or "[["
// at start, through the matching closer inclusive, honoring arbitrary
// nesting of the same delimiter kind. If the delimiter never closes, the
// region is truncated to FallbackWindow characters. If start does not sit
// on an opening delimiter, Balanced returns "".
func Balanced(text string, start int) string {
	end := BalancedEnd(text, start)
	if end < 0 {
		return ""
	}
	return text[start:end]
}

// BalancedEnd returns the exclusive end index of the balanced region
// opening at start, or -1 when start is not an opening delimiter. On
// unterminated input it returns the capped fallback end.
func BalancedEnd(text string, start int) int {
	var opener, closer string
	switch {
	case hasPrefixAt(text, start, "{{"):
		opener, closer = "{{", "}}"
	case hasPrefixAt(text, start, "[["):
		opener, closer = "[[", "]]"
	default:
		return -1
	}

	depth := 0
	i := start
	for i < len(text) {
		switch {
		case hasPrefixAt(text, i, opener):
			depth++
			i += 2
		case hasPrefixAt(text, i, closer):
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}

	end := start + FallbackWindow
	if end > len(text) {
		end = len(text)
	}
	return end
}
