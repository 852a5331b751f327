package trivia

// HTMLCleaner strips residual HTML (tags, ref subtrees, entities) from a
// markup fragment, returning plain text. The markup normalizer depends on
// this interface so the parsing core performs no HTML parsing itself.
type HTMLCleaner interface {
	Clean(fragment string) string
}
