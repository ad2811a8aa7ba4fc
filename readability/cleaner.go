// Package readability removes page boilerplate with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/pagedoc"
	"github.com/go-shiori/go-readability"
)

var _ pagedoc.Cleaner = (*Cleaner)(nil)

// Cleaner keeps the article body of a page the way reader views do.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns the article body of rawHTML. Blank input is EINVALID and a
// page without an article body is ENOTFOUND.
func (c *Cleaner) Clean(rawHTML string) (*pagedoc.CleanResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, pagedoc.Errorf(pagedoc.ENOTFOUND, "no article content found")
	}

	return &pagedoc.CleanResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
