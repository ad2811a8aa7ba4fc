// Package trafilatura removes page boilerplate with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ pagedoc.Cleaner = (*Cleaner)(nil)

// blockSelector matches the page blocks the content extractor reads.
const blockSelector = "h1, h2, h3, h4, p, ul"

// chromeSelector matches page regions that never hold main content.
const chromeSelector = "nav, footer, aside"

// Cleaner keeps the main content of a page, dropping navigation, footers
// and reader comments.
type Cleaner struct {
	opts trafilatura.Options
}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{opts: trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}}
}

// Clean returns the main content of rawHTML. Blank input is EINVALID and a
// page without recognizable main content is ENOTFOUND.
//
// trafilatura decides which text is main content, but its output may merge
// headings and paragraphs into one block. The returned HTML is therefore
// made of the page's own blocks whose text trafilatura kept, so each
// heading, paragraph and list survives as its own element.
func (c *Cleaner) Clean(rawHTML string) (*pagedoc.CleanResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), c.opts)
	if err != nil {
		return nil, err
	}
	if result == nil || result.ContentNode == nil {
		return nil, pagedoc.Errorf(pagedoc.ENOTFOUND, "no main content found")
	}

	kept := squash(goquery.NewDocumentFromNode(result.ContentNode).Text())
	if kept == "" {
		return nil, pagedoc.Errorf(pagedoc.ENOTFOUND, "no main content found")
	}

	content, err := keptBlocks(rawHTML, kept)
	if err != nil {
		return nil, err
	}
	if content == "" {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		content = buf.String()
	}

	return &pagedoc.CleanResult{
		Title:       result.Metadata.Title,
		ContentHTML: content,
	}, nil
}

// keptBlocks returns, in document order, the outer HTML of the blocks of
// rawHTML whose text appears in kept. Blocks nested in an already kept block
// or inside page chrome are skipped.
func keptBlocks(rawHTML, kept string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	taken := make(map[*html.Node]bool)
	var renderErr error
	doc.Find("body").Find(blockSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if insideTaken(sel.Get(0), taken) || sel.Closest(chromeSelector).Length() > 0 {
			return true
		}
		text := squash(sel.Text())
		if text == "" || !strings.Contains(kept, text) {
			return true
		}
		block, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = err
			return false
		}
		taken[sel.Get(0)] = true
		buf.WriteString(block)
		buf.WriteByte('\n')
		return true
	})
	if renderErr != nil {
		return "", renderErr
	}
	return buf.String(), nil
}

func insideTaken(n *html.Node, taken map[*html.Node]bool) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if taken[p] {
			return true
		}
	}
	return false
}

// squash drops all whitespace so text compares equal however it was
// wrapped or joined.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
