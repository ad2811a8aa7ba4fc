package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagedoc"
)

// DefaultWebhookTimeout is the default timeout for webhook calls.
const DefaultWebhookTimeout = 30 * time.Second

// Ensure Webhook implements pagedoc.Webhook at compile time.
var _ pagedoc.Webhook = (*Webhook)(nil)

// Webhook forwards page URLs to an automation webhook as a GET request
// with the page URL in the "url" query parameter.
type Webhook struct {
	endpoint *url.URL
	client   *http.Client
}

// NewWebhook creates a Webhook that calls endpoint. Query parameters already
// present on endpoint are preserved.
func NewWebhook(endpoint string) (*Webhook, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, pagedoc.Errorf(pagedoc.EINVALID, "invalid webhook URL %q", endpoint)
	}
	return &Webhook{
		endpoint: u,
		client:   &http.Client{Timeout: DefaultWebhookTimeout},
	}, nil
}

// Forward sends pageURL to the webhook. Any non-2xx response is an error.
func (w *Webhook) Forward(ctx context.Context, pageURL string) error {
	u := *w.endpoint
	q := u.Query()
	q.Set("url", pageURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
