package pagedoc

import "context"

// SitemapService lists the pages a site advertises in its sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the page URLs of the site at siteURL in sitemap
	// order, without duplicates. A siteURL ending in ".xml" is read as a
	// sitemap directly. Otherwise sitemaps are located through robots.txt or
	// /sitemap.xml and only pages under siteURL's path are returned.
	DiscoverURLs(ctx context.Context, siteURL string) ([]string, error)
}
