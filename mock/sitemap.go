package mock

import (
	"context"

	"github.com/fwojciec/pagedoc"
)

var _ pagedoc.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of pagedoc.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL)
}

var _ pagedoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagedoc.Converter.
type Converter struct {
	ConvertFn func(html, pageURL string) (string, error)
}

func (c *Converter) Convert(html, pageURL string) (string, error) {
	return c.ConvertFn(html, pageURL)
}
