package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stagenote"
)

var venueSelectors = []string{
	".prf_place", ".venue", ".location", ".place", ".hall",
	".concert-hall", `[class*="venue"]`, `[class*="place"]`,
	`.info_detail li:contains("장소")`, ".theater_name",
	`span:contains("공연장")`, `dd:contains("홀")`,
}

type venuePattern struct {
	name string
	re   *regexp.Regexp
}

type venueMatcher struct {
	venues []venuePattern

	// ocrVenues is the restricted list scanned over OCR text with a
	// shorter trailing window.
	ocrVenues []venuePattern

	// hall tightens a greedy venue window to end at a hall/house/theater
	// style suffix token when one appears.
	hall *regexp.Regexp

	keywords []*regexp.Regexp
}

func newVenueMatcher(vocab *Vocabulary) venueMatcher {
	venues := make([]venuePattern, 0, len(vocab.Venues))
	for _, name := range vocab.Venues {
		venues = append(venues, venuePattern{
			name: name,
			re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[^\n\r]{0,30}`),
		})
	}

	ocrVenues := make([]venuePattern, 0, len(vocab.OCRVenues))
	for _, name := range vocab.OCRVenues {
		ocrVenues = append(ocrVenues, venuePattern{
			name: name,
			re:   regexp.MustCompile(regexp.QuoteMeta(name) + `[^\n\r]{0,20}`),
		})
	}

	keywords := make([]*regexp.Regexp, 0, len(vocab.VenueKeywords))
	for _, kw := range vocab.VenueKeywords {
		keywords = append(keywords, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`[\s:：]+([^\n\r]{3,50})`))
	}

	return venueMatcher{
		venues:    venues,
		ocrVenues: ocrVenues,
		hall:      regexp.MustCompile(`(?i).*?(?:홀|Hall|하우스|House|극장|Theater|당|Center)[^\n\r]{0,10}`),
		keywords:  keywords,
	}
}

func (m venueMatcher) extract(doc stagenote.Document, pageText string) string {
	// Known venues first; extend the match window, then try to tighten it
	// to the hall name.
	for _, vp := range m.venues {
		match := vp.re.FindString(pageText)
		if match == "" {
			continue
		}
		if tightened := m.hall.FindString(match); tightened != "" {
			return strings.TrimSpace(tightened)
		}
		return strings.TrimSpace(match)
	}

	if doc != nil {
		for _, sel := range venueSelectors {
			if v := doc.Text(sel); utf8.RuneCountInString(v) > 2 {
				return v
			}
		}
	}

	for _, re := range m.keywords {
		if match := re.FindStringSubmatch(pageText); match != nil {
			return strings.TrimSpace(match[1])
		}
	}

	return ""
}

// extractFromOCR scans OCR text for a venue from the restricted list, with a
// shorter window and no hall tightening.
func (m venueMatcher) extractFromOCR(ocrText string) string {
	if ocrText == "" {
		return ""
	}
	for _, vp := range m.ocrVenues {
		if match := vp.re.FindString(ocrText); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}
