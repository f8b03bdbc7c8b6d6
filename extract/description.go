package extract

import (
	"unicode/utf8"

	"github.com/fwojciec/stagenote"
)

var descriptionSelectors = []string{
	".description", ".summary", ".overview", ".intro", "article",
}

type descriptionMatcher struct{}

// extract returns the first substantial description block, or the longest
// paragraph on the page when no labeled block exists.
func (descriptionMatcher) extract(doc stagenote.Document) string {
	if doc == nil {
		return ""
	}

	for _, sel := range descriptionSelectors {
		if v := doc.Text(sel); utf8.RuneCountInString(v) > 50 {
			return truncateRunes(v, stagenote.MaxDescriptionLen)
		}
	}

	var longest string
	doc.Each("p", func(el stagenote.Element) {
		if t := el.Text(); len(t) > len(longest) {
			longest = t
		}
	})
	return truncateRunes(longest, stagenote.MaxDescriptionLen)
}
