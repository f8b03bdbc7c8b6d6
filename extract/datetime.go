package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/stagenote"
)

// dateSelectors are the structured fallback when no text pattern matches.
var dateSelectors = []string{
	".prf_date", ".date", ".performanceDate", ".event-date",
	".performance-date", ".concert-date", "time", `[class*="date"]`,
	`.info_detail li:contains("일시")`, ".detail_info span",
}

type dateMatcher struct {
	// dateTime patterns are ordered most specific first: full
	// date+weekday+time, numeric variants, then bare dates.
	dateTime []*regexp.Regexp

	// times recover a time component when the matched date lacks one.
	times []*regexp.Regexp

	ocrDates []*regexp.Regexp

	embeddedTime *regexp.Regexp
	twoDigits    *regexp.Regexp
}

func newDateMatcher() dateMatcher {
	return dateMatcher{
		dateTime: []*regexp.Regexp{
			regexp.MustCompile(`\d{4}[\.\-/]\d{1,2}[\.\-/]\d{1,2}\s*\(?[월화수목금토일]\)?\s*\d{1,2}[:\s]*\d{2}`),
			regexp.MustCompile(`\d{4}년\s*\d{1,2}월\s*\d{1,2}일\s*\(?[월화수목금토일]\)?\s*[오전후]*\s*\d{1,2}[시:\s]*\d{2}분?`),
			regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일\s*\(?[월화수목금토일]\)?\s*\d{1,2}[:\s]*\d{2}`),
			regexp.MustCompile(`\d{4}[\.\-/]\d{1,2}[\.\-/]\d{1,2}`),
			regexp.MustCompile(`\d{4}년\s*\d{1,2}월\s*\d{1,2}일`),
		},
		times: []*regexp.Regexp{
			regexp.MustCompile(`[오전후]*\s*\d{1,2}[시:\s]+\d{2}분?`),
			regexp.MustCompile(`\d{1,2}:\d{2}\s*[APM\.]+`),
			regexp.MustCompile(`\d{1,2}:\d{2}`),
		},
		ocrDates: []*regexp.Regexp{
			regexp.MustCompile(`\d{4}[\.\-/]\d{1,2}[\.\-/]\d{1,2}`),
			regexp.MustCompile(`\d{4}년\s*\d{1,2}월\s*\d{1,2}일`),
			regexp.MustCompile(`\d{1,2}월\s*\d{1,2}일`),
		},
		embeddedTime: regexp.MustCompile(`\d{1,2}[:\s]\d{2}`),
		twoDigits:    regexp.MustCompile(`\d{2}`),
	}
}

func (m dateMatcher) extract(doc stagenote.Document, pageText string) string {
	var dateResult, timeResult string

	for _, re := range m.dateTime {
		if v := strings.TrimSpace(re.FindString(pageText)); v != "" {
			dateResult = v
			break
		}
	}

	// Recover a separate time when the date carries none.
	if !m.embeddedTime.MatchString(dateResult) {
		for _, re := range m.times {
			if v := strings.TrimSpace(re.FindString(pageText)); v != "" {
				timeResult = v
				break
			}
		}
	}

	if dateResult == "" && doc != nil {
		for _, sel := range dateSelectors {
			if v := doc.Text(sel); v != "" && m.twoDigits.MatchString(v) {
				dateResult = v
				break
			}
		}
	}

	// Concatenation order is always "date time".
	if timeResult != "" {
		return strings.TrimSpace(dateResult + " " + timeResult)
	}
	return strings.TrimSpace(dateResult)
}

// extractFromOCR recovers a bare date from OCR text when the live page
// yielded nothing.
func (m dateMatcher) extractFromOCR(ocrText string) string {
	if ocrText == "" {
		return ""
	}
	for _, re := range m.ocrDates {
		if v := re.FindString(ocrText); v != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
