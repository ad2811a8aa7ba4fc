package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagedoc"
	"golang.org/x/sync/errgroup"
)

var _ pagedoc.SitemapService = (*SitemapService)(nil)

// DefaultSitemapConcurrency bounds parallel fetches of sitemap index children.
const DefaultSitemapConcurrency = 4

// SitemapService reads XML sitemaps over HTTP.
type SitemapService struct {
	client      *http.Client
	userAgent   string
	concurrency int
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{
		client:      client,
		userAgent:   DefaultUserAgent,
		concurrency: DefaultSitemapConcurrency,
	}
}

// DiscoverURLs implements pagedoc.SitemapService.
func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	site, err := url.Parse(siteURL)
	if err != nil || site.Host == "" {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "invalid site URL %q", siteURL)
	}

	var sitemaps []string
	prefix := ""
	if strings.HasSuffix(site.Path, ".xml") {
		sitemaps = []string{site.String()}
	} else {
		if site.Path != "/" {
			prefix = site.Path
		}
		root := &url.URL{Scheme: site.Scheme, Host: site.Host}
		if sitemaps, err = s.locateSitemaps(ctx, root); err != nil {
			return nil, err
		}
		if len(sitemaps) == 0 {
			return nil, pagedoc.Errorf(pagedoc.ENOTFOUND, "no sitemap found for %s", root)
		}
	}

	w := &sitemapWalk{svc: s, seen: map[string]bool{}}
	var urls []string
	seen := map[string]bool{}
	for _, sm := range sitemaps {
		found, err := w.read(ctx, sm)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seen[u] || !underPath(u, prefix) {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}

	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// underPath reports whether rawURL's path lies under prefix on a segment
// boundary: /docs matches /docs and /docs/intro but not /documentation.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// locateSitemaps reads Sitemap directives from robots.txt and falls back to
// /sitemap.xml. A site without either yields no sitemaps.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		defer body.Close()
		var found []string
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			key, value, ok := strings.Cut(line, ":")
			if ok && strings.EqualFold(strings.TrimSpace(key), "sitemap") {
				if v := strings.TrimSpace(value); v != "" {
					found = append(found, v)
				}
			}
		}
		if len(found) > 0 {
			return found, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	req, err := s.newRequest(ctx, http.MethodHead, fallback)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return []string{fallback}, nil
}

// sitemapWalk reads one sitemap tree, visiting each sitemap at most once.
type sitemapWalk struct {
	svc *SitemapService

	mu   sync.Mutex
	seen map[string]bool
}

func (w *sitemapWalk) visit(sitemapURL string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[sitemapURL] {
		return false
	}
	w.seen[sitemapURL] = true
	return true
}

// read returns the page URLs of a urlset, or of every child sitemap of a
// sitemapindex in index order. Children are fetched concurrently.
func (w *sitemapWalk) read(ctx context.Context, sitemapURL string) ([]string, error) {
	if !w.visit(sitemapURL) {
		return nil, nil
	}

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	if root.Tag != "sitemapindex" {
		return locs(root, "url"), nil
	}

	children := locs(root, "sitemap")
	results := make([][]string, len(children))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.svc.concurrency)
	for i, child := range children {
		g.Go(func() error {
			urls, err := w.read(gctx, child)
			results[i] = urls
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var urls []string
	for _, r := range results {
		urls = append(urls, r...)
	}
	return urls, nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) newRequest(ctx context.Context, method, target string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	return req, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := s.newRequest(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}
