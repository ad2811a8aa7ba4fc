package pagedoc

import "context"

// ResultStore holds the most recently received relay result.
// Each SetResult replaces the previous value; no history is kept.
type ResultStore interface {
	SetResult(url string)
	Result() (url string, ok bool)
}

// Webhook forwards a page URL to an external automation service.
type Webhook interface {
	Forward(ctx context.Context, pageURL string) error
}
