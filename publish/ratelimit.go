package publish

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/pagedoc"
	"golang.org/x/time/rate"
)

var _ pagedoc.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter gives every host its own token bucket, so a long URL list
// against one site is fetched at a steady pace while other hosts proceed.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter allows rps requests per second to each host, one at a
// time. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{limit: rate.Limit(rps), hosts: map[string]*rate.Limiter{}}
}

// Wait blocks until a request to domain is allowed or ctx is done. Host
// names are compared case-insensitively.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.limit <= 0 {
		return ctx.Err()
	}
	return d.host(strings.ToLower(domain)).Wait(ctx)
}

func (d *DomainLimiter) host(name string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[name]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[name] = l
	}
	return l
}
