package extract

import (
	"net/url"
	"strings"

	"github.com/fwojciec/stagenote"
)

// posterSelectors shortlist likely poster images from the document tree.
// The Open Graph image is consulted last.
var posterSelectors = []string{
	".poster img", ".main-image img", ".visual img",
	".detail_poster img", ".prf_poster img", `[class*="poster"] img`,
	".thumb img", ".performance-image img",
}

const ogImageSelector = `meta[property="og:image"]`

// posterURLKeywords filter the rendered-image scan: large images whose URL
// carries none of these are assumed to be site chrome.
var posterURLKeywords = []string{"poster", "main", "visual", "performance"}

// minPosterDimension is the smallest natural width/height a rendered image
// must exceed to count as a poster candidate.
const minPosterDimension = 300

type posterMatcher struct{}

// extract unions the selector pass and the rendered-image pass, preserving
// first-found order, deduplicating by exact URL, capped at three.
func (posterMatcher) extract(doc stagenote.Document, sourceURL string, rendered []stagenote.RenderedImage) []string {
	var urls []string
	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	add := func(raw string) {
		resolved := resolveImageURL(base, raw)
		if resolved != "" && !contains(urls, resolved) {
			urls = append(urls, resolved)
		}
	}

	if doc != nil {
		for _, sel := range posterSelectors {
			doc.Each(sel, func(el stagenote.Element) {
				src := el.Attr("src")
				if src == "" {
					src = el.Attr("data-src")
				}
				if src != "" {
					add(src)
				}
			})
		}
		if content := doc.Attr(ogImageSelector, "content"); content != "" {
			add(content)
		}
	}

	for _, img := range rendered {
		if img.Width <= minPosterDimension || img.Height <= minPosterDimension {
			continue
		}
		if !containsAnyKeyword(img.URL, posterURLKeywords) {
			continue
		}
		add(img.URL)
	}

	if len(urls) > stagenote.MaxPosterImages {
		urls = urls[:stagenote.MaxPosterImages]
	}
	return urls
}

func resolveImageURL(base *url.URL, raw string) string {
	if base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func containsAnyKeyword(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
