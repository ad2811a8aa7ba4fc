package publish

import (
	"context"
	"time"

	"github.com/fwojciec/pagedoc"
)

// FetchFunc fetches the HTML of url.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives printf-style progress notes.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the waits between page fetch attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches url and, while the failure is transient,
// tries again after each of delays in turn. Only EINTERNAL errors are
// transient; a missing page or an invalid URL is returned at once.
// logf, when set, is told about every retry.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logf LogFunc, delays []time.Duration) (string, error) {
	html, err := fetch(ctx, url)
	for i, delay := range delays {
		if err == nil || pagedoc.ErrorCode(err) != pagedoc.EINTERNAL {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if logf != nil {
			logf("retry %s in %s (attempt %d/%d): %v", url, delay, i+2, len(delays)+1, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return "", err
		}
		html, err = fetch(ctx, url)
	}
	if err != nil {
		return "", err
	}
	return html, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
