package publish_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagedoc/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// elapsed runs waits against l in order and returns how long the last one took.
func elapsed(t *testing.T, l *publish.DomainLimiter, hosts ...string) time.Duration {
	t.Helper()
	var last time.Duration
	for _, h := range hosts {
		start := time.Now()
		require.NoError(t, l.Wait(context.Background(), h))
		last = time.Since(start)
	}
	return last
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request to a host is immediate", func(t *testing.T) {
		t.Parallel()

		assert.Less(t, elapsed(t, publish.NewDomainLimiter(10), "example.com"), 50*time.Millisecond)
	})

	t.Run("second request to the same host waits", func(t *testing.T) {
		t.Parallel()

		assert.GreaterOrEqual(t, elapsed(t, publish.NewDomainLimiter(10), "example.com", "example.com"), 80*time.Millisecond)
	})

	t.Run("host names ignore case", func(t *testing.T) {
		t.Parallel()

		assert.GreaterOrEqual(t, elapsed(t, publish.NewDomainLimiter(10), "example.com", "EXAMPLE.com"), 80*time.Millisecond)
	})

	t.Run("hosts are limited independently", func(t *testing.T) {
		t.Parallel()

		assert.Less(t, elapsed(t, publish.NewDomainLimiter(10), "example.com", "other.example"), 50*time.Millisecond)
	})

	t.Run("non-positive rate disables limiting", func(t *testing.T) {
		t.Parallel()

		hosts := []string{"example.com", "example.com", "example.com", "example.com"}
		start := time.Now()
		elapsed(t, publish.NewDomainLimiter(0), hosts...)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		t.Parallel()

		l := publish.NewDomainLimiter(1)
		elapsed(t, l, "example.com")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, l.Wait(ctx, "example.com"))
	})

	t.Run("concurrent callers all get through", func(t *testing.T) {
		t.Parallel()

		l := publish.NewDomainLimiter(100)
		var g errgroup.Group
		for range 5 {
			g.Go(func() error { return l.Wait(context.Background(), "example.com") })
		}

		assert.NoError(t, g.Wait())
	})
}
