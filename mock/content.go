package mock

import "github.com/fwojciec/pagedoc"

var _ pagedoc.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of pagedoc.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) []pagedoc.ContentElement
}

func (e *ContentExtractor) Extract(html string) []pagedoc.ContentElement {
	return e.ExtractFn(html)
}

var _ pagedoc.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of pagedoc.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (*pagedoc.CleanResult, error)
}

func (c *Cleaner) Clean(html string) (*pagedoc.CleanResult, error) {
	return c.CleanFn(html)
}
