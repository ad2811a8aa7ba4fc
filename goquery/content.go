// Package goquery implements content extraction on top of goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedoc"
	"golang.org/x/net/html/atom"
)

// Ensure ContentExtractor implements pagedoc.ContentExtractor at compile time.
var _ pagedoc.ContentExtractor = (*ContentExtractor)(nil)

// blockSelector matches every element the extractor reads, in document order.
const blockSelector = "h1, h2, h3, h4, p, ul"

// blockKinds maps text block tags to their element kind.
// Lists are expanded item by item and are not listed here.
var blockKinds = map[atom.Atom]pagedoc.ElementKind{
	atom.H1: pagedoc.KindHeading1,
	atom.H2: pagedoc.KindHeading2,
	atom.H3: pagedoc.KindHeading3,
	atom.H4: pagedoc.KindHeading4,
	atom.P:  pagedoc.KindParagraph,
}

// ContentExtractor extracts headings, paragraphs and list items from HTML.
type ContentExtractor struct{}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Extract scans the document body for h1-h4, p and ul elements.
// Each list contributes its li descendants in order. Elements whose
// trimmed text is empty are skipped.
func (e *ContentExtractor) Extract(html string) []pagedoc.ContentElement {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var elements []pagedoc.ContentElement
	doc.Find("body").Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)

		if node.DataAtom == atom.Ul {
			sel.Find("li").Each(func(_ int, li *goquery.Selection) {
				elements = appendElement(elements, pagedoc.KindListItem, li.Text())
			})
			return
		}

		if kind, ok := blockKinds[node.DataAtom]; ok {
			elements = appendElement(elements, kind, sel.Text())
		}
	})

	return elements
}

func appendElement(elements []pagedoc.ContentElement, kind pagedoc.ElementKind, text string) []pagedoc.ContentElement {
	text = strings.TrimSpace(text)
	if text == "" {
		return elements
	}
	return append(elements, pagedoc.ContentElement{Kind: kind, Text: text})
}
