package pagedoc

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML for url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
