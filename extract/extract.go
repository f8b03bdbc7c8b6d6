// Package extract implements the performance metadata extraction engine:
// a cascade of pattern-matching strategies that reconciles a queryable
// document tree, raw page text, and optional OCR text into one normalized
// PerformanceRecord.
//
// Each field extractor is an ordered list of independent matchers tried in
// sequence until one succeeds; a miss leaves the field empty and is never
// an error. Extraction is a pure function of its inputs with no I/O, so
// any number of extractions may run concurrently.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/stagenote"
)

// Source carries the input signal sources for one extraction.
type Source struct {
	// Doc is the parsed document tree; may be nil, in which case all
	// structured-selector cascade steps yield misses.
	Doc stagenote.Document

	// PageText is the rendered page text, all text nodes concatenated.
	PageText string

	// OCRText is optional text recovered from a poster image. When empty,
	// the OCR-dependent cascade steps simply yield no matches.
	OCRText string

	// URL is the page of origin, stamped onto the record.
	URL string

	// PosterImage is the first poster candidate URL, if any.
	PosterImage string
}

// Extractor extracts performance metadata. It is immutable and safe for
// concurrent use; all patterns are compiled at construction.
type Extractor struct {
	title       titleMatcher
	date        dateMatcher
	venue       venueMatcher
	performers  performerMatcher
	program     programMatcher
	description descriptionMatcher
	price       priceMatcher
	poster      posterMatcher

	whitespace *regexp.Regexp
}

// Option configures an Extractor.
type Option func(*options)

type options struct {
	vocab *Vocabulary
}

// WithVocabulary overrides the built-in vocabulary tables.
func WithVocabulary(v *Vocabulary) Option {
	return func(o *options) {
		o.vocab = v
	}
}

// New creates an Extractor, compiling all cascade patterns up front.
func New(opts ...Option) *Extractor {
	o := options{vocab: DefaultVocabulary()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Extractor{
		title:      newTitleMatcher(o.vocab),
		date:       newDateMatcher(),
		venue:      newVenueMatcher(o.vocab),
		performers: newPerformerMatcher(o.vocab),
		program:    newProgramMatcher(o.vocab),
		price:      newPriceMatcher(),
		whitespace: regexp.MustCompile(`\s+`),
	}
}

// Extract runs every field extractor over the source and assembles the
// result into one record. The record is complete when returned and is not
// mutated afterwards.
func (e *Extractor) Extract(src Source) *stagenote.PerformanceRecord {
	combined := src.PageText + " " + src.OCRText

	date := e.date.extract(src.Doc, src.PageText)
	if date == "" {
		date = e.date.extractFromOCR(src.OCRText)
	}

	venue := e.venue.extract(src.Doc, src.PageText)
	if venue == "" {
		venue = e.venue.extractFromOCR(src.OCRText)
	}

	return &stagenote.PerformanceRecord{
		SourceURL:    src.URL,
		ScrapedAt:    time.Now().UTC(),
		Title:        e.title.extract(src.Doc, src.PageText),
		Date:         date,
		Venue:        venue,
		Performers:   e.performers.extract(src.Doc, combined),
		Program:      e.program.extract(src.Doc, combined, src.OCRText),
		Description:  e.description.extract(src.Doc),
		Price:        e.price.extract(src.Doc, src.PageText),
		PosterImage:  src.PosterImage,
		OCRExtracted: src.OCRText != "",
		RawText:      truncateRunes(strings.TrimSpace(e.whitespace.ReplaceAllString(combined, " ")), stagenote.MaxRawTextLen),
	}
}

// PosterCandidates shortlists up to three probable poster image URLs from
// the document tree and the rendered-image scan. Relative URLs are resolved
// against sourceURL.
func (e *Extractor) PosterCandidates(doc stagenote.Document, sourceURL string, rendered []stagenote.RenderedImage) []string {
	return e.poster.extract(doc, sourceURL, rendered)
}
