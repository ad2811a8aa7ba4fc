package pagedoc

// ElementKind identifies the semantic role of an extracted text element.
// The set of kinds is closed; no other values are produced by extractors.
type ElementKind string

// ElementKind constants.
const (
	KindHeading1  ElementKind = "h1"
	KindHeading2  ElementKind = "h2"
	KindHeading3  ElementKind = "h3"
	KindHeading4  ElementKind = "h4"
	KindParagraph ElementKind = "p"
	KindListItem  ElementKind = "li"
)

// HeadingLevel returns the heading level (1-4) for heading kinds.
// The second return value is false for non-heading kinds.
func (k ElementKind) HeadingLevel() (int, bool) {
	switch k {
	case KindHeading1:
		return 1, true
	case KindHeading2:
		return 2, true
	case KindHeading3:
		return 3, true
	case KindHeading4:
		return 4, true
	}
	return 0, false
}

// IsListItem reports whether the kind is a list item.
func (k ElementKind) IsListItem() bool {
	return k == KindListItem
}

// ContentElement is one unit of text extracted from a page.
// Text is always trimmed and never empty.
type ContentElement struct {
	Kind ElementKind `json:"kind"`
	Text string      `json:"text"`
}

// ContentExtractor turns page HTML into an ordered sequence of content elements.
type ContentExtractor interface {
	// Extract scans the HTML body and returns headings, paragraphs and list
	// items in document order. Extraction is pure: the same input always
	// yields the same output. Empty or malformed HTML yields no elements.
	Extract(html string) []ContentElement
}
