package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/stagenote"
)

// titleSelectors are tried in priority order after the text patterns fail.
var titleSelectors = []string{
	"h1", ".concert_title", ".performance_title", ".prf_title",
	`[class*="title"]`, "title", ".title",
}

type titleMatcher struct {
	patterns []*regexp.Regexp
}

func newTitleMatcher(vocab *Vocabulary) titleMatcher {
	patterns := make([]*regexp.Regexp, 0, len(vocab.TitlePatterns)+2)
	for _, p := range vocab.TitlePatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	// Generic "free text ending in a bracketed work title".
	patterns = append(patterns,
		regexp.MustCompile(`[^\n]{3,100}<[^\n]+>`),
		regexp.MustCompile(`[^\n]{3,100}《[^》]+》`),
	)
	return titleMatcher{patterns: patterns}
}

func (m titleMatcher) extract(doc stagenote.Document, pageText string) string {
	cascade := []func() string{
		func() string {
			for _, re := range m.patterns {
				if v := re.FindString(pageText); v != "" {
					return v
				}
			}
			return ""
		},
		func() string {
			return firstSelectorText(doc, titleSelectors, 5)
		},
	}

	for _, try := range cascade {
		if v := strings.TrimSpace(try()); v != "" {
			return v
		}
	}
	return ""
}
