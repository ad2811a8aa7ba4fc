package main

import (
	"context"
	"os"
	"strings"

	"github.com/fwojciec/pagedoc"
	"gopkg.in/yaml.v3"
)

// urlList is the layout of a --urls-file document.
type urlList struct {
	URLs []string `yaml:"urls"`
}

// URLSource lists the places a command reads page URLs from.
type URLSource struct {
	URLs     []string `arg:"" optional:"" name:"url" help:"Page URLs"`
	URLsFile string   `name:"urls-file" short:"f" type:"existingfile" help:"YAML file with a 'urls' list"`
	Sitemap  string   `help:"Also take every page listed in this site's sitemap"`
}

// loadURLs combines arguments, file entries and sitemap pages, in that
// order. Blank entries are dropped.
func loadURLs(ctx context.Context, sitemaps pagedoc.SitemapService, src URLSource) ([]string, error) {
	urls := make([]string, 0, len(src.URLs))
	add := func(list []string) {
		for _, u := range list {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
	}
	add(src.URLs)

	if src.URLsFile != "" {
		data, err := os.ReadFile(src.URLsFile)
		if err != nil {
			return nil, pagedoc.Errorf(pagedoc.EINVALID, "reading URL file %q: %v", src.URLsFile, err)
		}
		var list urlList
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, pagedoc.Errorf(pagedoc.EINVALID, "parsing URL file %q: %v", src.URLsFile, err)
		}
		add(list.URLs)
	}

	if src.Sitemap != "" {
		if sitemaps == nil {
			return nil, pagedoc.Errorf(pagedoc.EINTERNAL, "sitemap discovery is not configured")
		}
		found, err := sitemaps.DiscoverURLs(ctx, src.Sitemap)
		if err != nil {
			return nil, err
		}
		add(found)
	}

	if len(urls) == 0 {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "no URLs given; pass them as arguments, with --urls-file or --sitemap")
	}
	return urls, nil
}
