// Package goquery implements document parsing and selector queries using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/stagenote"
)

// Parser parses HTML into queryable documents.
type Parser struct{}

var _ stagenote.DocumentParser = (*Parser)(nil)

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses HTML into a Document. Returns EINVALID if the markup cannot
// be tokenized at all; partial or malformed markup still parses, matching
// browser behavior.
func (p *Parser) Parse(html string) (stagenote.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, stagenote.Errorf(stagenote.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Document wraps a goquery document behind the query interface. Selector
// queries never fail: an invalid or unmatched selector yields empty results.
type Document struct {
	doc *goquery.Document
}

var _ stagenote.Document = (*Document)(nil)

// Text returns the trimmed text of the first node matching selector.
func (d *Document) Text(selector string) (text string) {
	defer recoverSelector()
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// Attr returns the named attribute of the first node matching selector.
func (d *Document) Attr(selector, name string) (val string) {
	defer recoverSelector()
	v, _ := d.doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}

// Each calls fn for every node matching selector, in document order.
func (d *Document) Each(selector string, fn func(el stagenote.Element)) {
	defer recoverSelector()
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		fn(&element{sel: sel})
	})
}

// recoverSelector absorbs cascadia panics on malformed selectors so a bad
// selector in a cascade behaves as a miss rather than crashing extraction.
func recoverSelector() {
	_ = recover()
}

type element struct {
	sel *goquery.Selection
}

func (e *element) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e *element) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return strings.TrimSpace(v)
}
