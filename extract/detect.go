package extract

import (
	"strings"

	"github.com/ViewtifulSlayer/trivia-alpha"
	"github.com/ViewtifulSlayer/trivia-alpha/config"
)

// IsCharacterPage reports whether a page plausibly describes a single
// character. Titles for lists, ships, species, and works are excluded
// up front; the page body must carry a character infobox marker and at
// least one person-like field near the top.
func IsCharacterPage(page *trivia.Page, rules *config.Rules) bool {
	title := strings.ToLower(page.Title)
	if title == "" || !isLetter(title[0]) {
		return false
	}
	for _, excl := range rules.TitleExclusions {
		if strings.Contains(title, excl) {
			return false
		}
	}
	head := strings.ToLower(page.Text)
	if len(head) > 5000 {
		head = head[:5000]
	}
	marked := false
	for _, m := range rules.SidebarMarkers {
		if strings.Contains(head, strings.ToLower(m)) {
			marked = true
			break
		}
	}
	if !marked {
		return false
	}
	for _, ind := range rules.SidebarIndicators {
		if strings.Contains(head, ind) {
			return true
		}
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
