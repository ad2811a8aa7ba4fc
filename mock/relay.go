package mock

import (
	"context"

	"github.com/fwojciec/pagedoc"
)

var _ pagedoc.Webhook = (*Webhook)(nil)

// Webhook is a mock implementation of pagedoc.Webhook.
type Webhook struct {
	ForwardFn func(ctx context.Context, pageURL string) error
}

func (w *Webhook) Forward(ctx context.Context, pageURL string) error {
	return w.ForwardFn(ctx, pageURL)
}

var _ pagedoc.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of pagedoc.ResultStore.
type ResultStore struct {
	SetResultFn func(url string)
	ResultFn    func() (string, bool)
}

func (s *ResultStore) SetResult(url string) {
	s.SetResultFn(url)
}

func (s *ResultStore) Result() (string, bool) {
	return s.ResultFn()
}
