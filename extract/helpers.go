package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stagenote"
)

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// truncateRunes caps s at n runes.
func truncateRunes(s string, n int) string {
	return runePrefix(s, n)
}

// cutAfter keeps s up to the byte offset off plus at most extra more runes.
func cutAfter(s string, off, extra int) string {
	if off > len(s) {
		return s
	}
	rest := s[off:]
	if utf8.RuneCountInString(rest) <= extra {
		return s
	}
	return s[:off] + string([]rune(rest)[:extra])
}

// firstSelectorText returns the first non-empty selector text longer than
// minLen runes. A nil document yields no matches.
func firstSelectorText(doc stagenote.Document, selectors []string, minLen int) string {
	if doc == nil {
		return ""
	}
	for _, sel := range selectors {
		if v := doc.Text(sel); utf8.RuneCountInString(v) > minLen {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
