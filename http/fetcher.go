// Package http provides plain HTTP implementations of pagedoc.Fetcher,
// pagedoc.Webhook and pagedoc.SitemapService.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/pagedoc"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout bounds a single page request, body included.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies pagedoc to the sites it fetches.
const DefaultUserAgent = "pagedoc/1.0 (+https://github.com/fwojciec/pagedoc)"

var _ pagedoc.Fetcher = (*Fetcher)(nil)

// Fetcher downloads pages with unauthenticated GET requests and returns
// their HTML as UTF-8. It does not run scripts; use rod.Fetcher for pages
// rendered in the browser.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBytes makes pages larger than n bytes fail. Zero means no limit.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the HTML of url. Missing pages are ENOTFOUND, pages behind
// a login are EUNAUTHORIZED and other client errors or non-HTML responses
// are EINVALID, as are bodies over the WithMaxBytes limit. An empty body is
// an empty page. Network failures and server errors are returned as plain
// errors, which callers treat as transient.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagedoc.Errorf(pagedoc.EINVALID, "invalid URL %q", url)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", pagedoc.Errorf(pagedoc.EINVALID, "%s is not an HTML page (%s)", url, contentType)
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = http.MaxBytesReader(nil, resp.Body, f.maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", pagedoc.Errorf(pagedoc.EINVALID, "%s is larger than %d bytes", url, tooLarge.Limit)
		}
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) == 0 {
		return "", nil
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}
	return string(decoded), nil
}

// Close is a no-op; it exists to satisfy pagedoc.Fetcher.
func (f *Fetcher) Close() error {
	return nil
}

func statusError(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return pagedoc.Errorf(pagedoc.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return pagedoc.Errorf(pagedoc.EUNAUTHORIZED, "HTTP %d for %s", code, url)
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("HTTP %d for %s", code, url)
	default:
		return pagedoc.Errorf(pagedoc.EINVALID, "HTTP %d for %s", code, url)
	}
}

// isHTML accepts any text type and XHTML. A missing header is accepted
// since many servers omit it for HTML.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}
