package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stagenote"
)

var programSelectors = []string{
	".prf_program", ".program", ".repertoire", ".playlist", ".setlist",
	".program_list li", `[class*="program"]`, ".concert_program",
	`.info_detail li:contains("프로그램")`, `.info_detail li:contains("곡목")`,
	`dl dt:contains("프로그램") + dd`, ".tracklist li",
}

// Prefix windows for dedupe: composer captures carry more trailing text
// than musical-form captures, so they compare a longer lead.
const (
	composerPrefixWindow = 30
	formPrefixWindow     = 20
)

// opusTrailLen is how many runes past an opus token a composer capture keeps.
const opusTrailLen = 20

type programMatcher struct {
	// wellKnown are fixed bilingual patterns for works common enough to
	// warrant their own matchers (currently the Choral Symphony).
	wellKnown []*regexp.Regexp

	// ocrSymphony and ocrConcerto are consulted only when OCR text exists;
	// poster scans garble freeform text but keep numbered works legible.
	ocrSymphony *regexp.Regexp
	ocrConcerto *regexp.Regexp

	composers []*regexp.Regexp
	opus      []*regexp.Regexp
	keywords  []*regexp.Regexp
	forms     []*regexp.Regexp
	split     *regexp.Regexp
}

func newProgramMatcher(vocab *Vocabulary) programMatcher {
	composers := make([]*regexp.Regexp, 0, len(vocab.Composers))
	for _, c := range vocab.Composers {
		composers = append(composers, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(c)+`[\s:：,\-]*[^\n\r]{3,150}`))
	}

	opus := make([]*regexp.Regexp, 0, len(vocab.OpusMarkers))
	for _, p := range vocab.OpusMarkers {
		opus = append(opus, regexp.MustCompile(`(?i)`+p))
	}

	keywords := make([]*regexp.Regexp, 0, len(vocab.ProgramKeywords))
	for _, kw := range vocab.ProgramKeywords {
		keywords = append(keywords, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(kw)+`[\s:：]+([^\n]+)`))
	}

	return programMatcher{
		wellKnown: []*regexp.Regexp{
			regexp.MustCompile(`(?i)베토벤\s*교향곡\s*제\s*9번[^\n]{0,50}`),
			regexp.MustCompile(`(?i)Beethoven\s*Symphony\s*No\.?\s*9[^\n]{0,50}`),
			regexp.MustCompile(`(?i)교향곡\s*제\s*9번[^\n]*(?:합창|Choral)`),
			regexp.MustCompile(`(?i)Symphony\s*No\.?\s*9[^\n]*(?:합창|Choral)`),
			regexp.MustCompile(`(?i)베토벤[^\n]{0,30}(?:d단조|D\s*minor)[^\n]{0,30}(?:Op\.?\s*125)`),
		},
		ocrSymphony: regexp.MustCompile(`(?i)(?:교향곡|Symphony)\s*(?:제|No\.?)?\s*\d+번[^\n]{0,50}`),
		ocrConcerto: regexp.MustCompile(`(?i)(?:[가-힣]+|\w+)?\s*협주곡[^\n]{0,50}`),
		composers:   composers,
		opus:        opus,
		keywords:    keywords,
		forms: []*regexp.Regexp{
			regexp.MustCompile(`(?:피아노|바이올린|첼로)?\s*(?:소나타|협주곡|교향곡|현악\s*사중주|삼중주)\s*(?:제?\s*\d+번)?[^\n\r]{0,50}`),
			regexp.MustCompile(`(?i)(?:Piano|Violin|Cello)?\s*(?:Sonata|Concerto|Symphony|String\s*Quartet|Trio)\s*(?:No\.?\s*\d+)?[^\n\r]{0,50}`),
		},
		split: regexp.MustCompile(`[,、·]`),
	}
}

// extract aggregates program entries from six channels, deduplicating by
// leading-prefix containment. ocrText gates the OCR-only channel; the other
// regex channels run over text, which already includes OCR content.
func (m programMatcher) extract(doc stagenote.Document, text, ocrText string) []string {
	var programs []string

	// Channel 1: structured program selectors.
	if doc != nil {
		for _, sel := range programSelectors {
			doc.Each(sel, func(el stagenote.Element) {
				t := el.Text()
				if utf8.RuneCountInString(t) > 3 && !contains(programs, t) {
					programs = append(programs, t)
				}
			})
		}
	}

	// Channel 2: fixed well-known-work patterns, at most one instance.
	for _, re := range m.wellKnown {
		for _, raw := range re.FindAllString(text, -1) {
			if !m.hasChoralNinth(programs) {
				programs = append(programs, strings.TrimSpace(raw))
			}
		}
	}

	// Channel 3: OCR-only numbered works.
	if ocrText != "" {
		for _, re := range []*regexp.Regexp{m.ocrSymphony, m.ocrConcerto} {
			for _, raw := range re.FindAllString(ocrText, -1) {
				piece := strings.TrimSpace(raw)
				if !contains(programs, piece) {
					programs = append(programs, piece)
				}
			}
		}
	}

	// Channel 4: composer-anchored captures, tightened at opus tokens.
	for _, re := range m.composers {
		for _, raw := range re.FindAllString(text, -1) {
			piece := strings.TrimSpace(raw)
			for _, opusRe := range m.opus {
				if loc := opusRe.FindStringIndex(piece); loc != nil {
					piece = cutAfter(piece, loc[1], opusTrailLen)
				}
			}
			n := utf8.RuneCountInString(piece)
			if n > 5 && n < 200 && !anyContainsPrefix(programs, piece, composerPrefixWindow) {
				programs = append(programs, piece)
			}
		}
	}

	// Channel 5: program/repertoire keyword captures split into items.
	for _, re := range m.keywords {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			for _, item := range m.split.Split(match[1], -1) {
				item = strings.TrimSpace(item)
				n := utf8.RuneCountInString(item)
				if n > 5 && n < 150 && !contains(programs, item) {
					programs = append(programs, item)
				}
			}
		}
	}

	// Channel 6: musical-form patterns.
	for _, re := range m.forms {
		for _, raw := range re.FindAllString(text, -1) {
			piece := strings.TrimSpace(raw)
			if utf8.RuneCountInString(piece) > 5 && !anyContainsPrefix(programs, piece, formPrefixWindow) {
				programs = append(programs, piece)
			}
		}
	}

	if len(programs) > stagenote.MaxProgramItems {
		programs = programs[:stagenote.MaxProgramItems]
	}
	return programs
}

// hasChoralNinth reports whether an entry already covers Beethoven's Ninth.
func (m programMatcher) hasChoralNinth(programs []string) bool {
	for _, p := range programs {
		if strings.Contains(p, "베토벤") && strings.Contains(p, "9") {
			return true
		}
	}
	return false
}
