package trivia

// AppearanceIndex maps a series code to the sorted, case-insensitively
// deduplicated episode titles the character appears in. Series with no
// episodes are never present.
type AppearanceIndex map[string][]string

// Count returns the total number of episode entries across all series.
func (a AppearanceIndex) Count() int {
	n := 0
	for _, episodes := range a {
		n += len(episodes)
	}
	return n
}
