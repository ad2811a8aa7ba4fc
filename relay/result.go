package relay

import (
	"sync/atomic"

	"github.com/fwojciec/pagedoc"
)

var _ pagedoc.ResultStore = (*ResultSlot)(nil)

// ResultSlot holds the latest result URL in memory. It is safe for
// concurrent use and is empty until the first SetResult.
type ResultSlot struct {
	url atomic.Pointer[string]
}

// SetResult replaces the stored URL.
func (s *ResultSlot) SetResult(url string) {
	s.url.Store(&url)
}

// Result returns the stored URL, if any.
func (s *ResultSlot) Result() (string, bool) {
	p := s.url.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}
