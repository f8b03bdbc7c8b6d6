package stagenote

// Document is a queryable view of a parsed HTML page. The selector language
// is a CSS subset (tag, class, attribute, and :contains pseudo-selector
// queries). A selector that matches nothing, or that the implementation
// cannot compile, is a miss: Text and Attr return the empty string and Each
// visits nothing. Extraction treats misses as valid outcomes.
type Document interface {
	// Text returns the trimmed text of the first element matching selector,
	// or "" if there is no match.
	Text(selector string) string

	// Attr returns the named attribute of the first element matching
	// selector, or "" if there is no match or no such attribute.
	Attr(selector, name string) string

	// Each calls fn for every element matching selector, in document order.
	Each(selector string, fn func(el Element))
}

// Element is a single matched element within a Document.
type Element interface {
	// Text returns the element's trimmed text content.
	Text() string

	// Attr returns the named attribute value, or "" if absent.
	Attr(name string) string
}

// DocumentParser parses raw HTML into a queryable Document.
type DocumentParser interface {
	Parse(html string) (Document, error)
}
