package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/stagenote"
)

// DefaultRetryDelays returns the backoff delays for page load retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// renderWithRetry renders a URL with backoff retries. Ticketing sites rate
// limit aggressively, so transient failures are expected.
func renderWithRetry(ctx context.Context, url string, render func(ctx context.Context, url string) (*stagenote.RenderedPage, error), delays []time.Duration) (*stagenote.RenderedPage, error) {
	var page *stagenote.RenderedPage
	err := withRetry(ctx, delays, func() error {
		var err error
		page, err = render(ctx, url)
		return err
	})
	return page, err
}

// fetchWithRetry fetches a URL with backoff retries.
func fetchWithRetry(ctx context.Context, url string, fetch func(ctx context.Context, url string) (string, error), delays []time.Duration) (string, error) {
	var html string
	err := withRetry(ctx, delays, func() error {
		var err error
		html, err = fetch(ctx, url)
		return err
	})
	return html, err
}

// withRetry runs fn with the given backoff delays between attempts. The
// number of attempts is len(delays)+1. A canceled context ends the retries
// immediately.
func withRetry(ctx context.Context, delays []time.Duration, fn func() error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		// Don't sleep after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
