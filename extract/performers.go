package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stagenote"
)

var performerSelectors = []string{
	".prf_cast", ".performer", ".artist", ".cast", ".musicians",
	".conductor", ".soloist", `[class*="performer"]`, `[class*="artist"]`,
	`.info_detail li:contains("출연")`, ".cast_list li",
	`dl dt:contains("출연") + dd`, ".artist_info",
}

type pipeRolePattern struct {
	role string
	re   *regexp.Regexp
}

type keywordRolePattern struct {
	role string
	res  []*regexp.Regexp
}

type performerMatcher struct {
	pipe []pipeRolePattern

	// nameSplit separates a Korean-script name run from an optional
	// trailing Latin-script run.
	nameSplit *regexp.Regexp

	keyword []keywordRolePattern
	general []*regexp.Regexp
	split   *regexp.Regexp
}

func newPerformerMatcher(vocab *Vocabulary) performerMatcher {
	pipe := make([]pipeRolePattern, 0, len(vocab.PipeRoles))
	for _, pr := range vocab.PipeRoles {
		kw := pr.Keyword
		if kw == "" {
			kw = regexp.QuoteMeta(pr.Role)
		}
		pipe = append(pipe, pipeRolePattern{
			role: pr.Role,
			re:   regexp.MustCompile(kw + `\s*[|│]\s*([^\n,]+?)(?:\s*[,\n]|$)`),
		})
	}

	keyword := make([]keywordRolePattern, 0, len(vocab.KeywordRoles))
	for _, kr := range vocab.KeywordRoles {
		korCapture := kr.KorCapture
		if korCapture == "" {
			korCapture = `[가-힣a-zA-Z\s]+`
		}
		engCapture := kr.EngCapture
		if engCapture == "" {
			engCapture = `[a-zA-Z\s\-]+`
		}
		keyword = append(keyword, keywordRolePattern{
			role: kr.Role,
			// The name run must end at a comma, newline, or end of text;
			// a run followed by anything else is not a cast listing.
			res: []*regexp.Regexp{
				regexp.MustCompile(kr.Kor + `[\s:：]*(` + korCapture + `)(?:[,\n]|$)`),
				regexp.MustCompile(`(?i)` + kr.Eng + `[\s:：]*(` + engCapture + `)(?:[,\n]|$)`),
			},
		})
	}

	return performerMatcher{
		pipe:      pipe,
		nameSplit: regexp.MustCompile(`([가-힣]+)\s*([A-Za-z\s\-]+)?`),
		keyword:   keyword,
		general: []*regexp.Regexp{
			regexp.MustCompile(`출연[\s:：]*([^\n]{3,100})`),
			regexp.MustCompile(`(?i)Cast[\s:：]*([^\n]{3,100})`),
		},
		split: regexp.MustCompile(`[,、]`),
	}
}

// extract aggregates performers from four channels into one ordered list.
// Every insertion is guarded against substring containment of an already
// inserted name, so a role-annotated entry suppresses later bare mentions.
func (m performerMatcher) extract(doc stagenote.Document, text string) []string {
	var performers []string

	// Channel 1: structured cast selectors.
	if doc != nil {
		for _, sel := range performerSelectors {
			doc.Each(sel, func(el stagenote.Element) {
				t := el.Text()
				if utf8.RuneCountInString(t) > 1 && !contains(performers, t) {
					performers = append(performers, t)
				}
			})
		}
	}

	// Channel 2: "role | name" listings.
	for _, pr := range m.pipe {
		for _, match := range pr.re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(match[1])
			if utf8.RuneCountInString(name) <= 1 {
				continue
			}
			nm := m.nameSplit.FindStringSubmatch(name)
			if nm == nil {
				continue
			}
			kor := nm[1]
			eng := strings.TrimSpace(nm[2])
			full := kor
			if eng != "" {
				full = kor + " (" + eng + ")"
			}
			if !anyContains(performers, kor) {
				performers = append(performers, full+" - "+pr.role)
			}
		}
	}

	// Channel 3: role keyword followed by a name run, Korean then English
	// per role.
	for _, kr := range m.keyword {
		for _, re := range kr.res {
			for _, match := range re.FindAllStringSubmatch(text, -1) {
				name := strings.TrimSpace(match[1])
				n := utf8.RuneCountInString(name)
				if n <= 1 || n >= 50 {
					continue
				}
				if !anyContains(performers, name) {
					performers = append(performers, name+" ("+kr.role+")")
				}
			}
		}
	}

	// Channel 4: generic cast listings split into individual names.
	for _, re := range m.general {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			for _, part := range m.split.Split(match[1], -1) {
				name := strings.TrimSpace(part)
				n := utf8.RuneCountInString(name)
				if n <= 1 || n >= 50 {
					continue
				}
				if !anyContains(performers, name) {
					performers = append(performers, name)
				}
			}
		}
	}

	if len(performers) > stagenote.MaxPerformers {
		performers = performers[:stagenote.MaxPerformers]
	}
	return performers
}
