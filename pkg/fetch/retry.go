package fetch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// FetchWithRetry performs a GET with exponential-backoff retry. Up to
// opts.MaxRetries re-attempts happen after the initial one; the delay before
// retry n is opts.BaseDelay * 2^n.
//
// A response with status 429 or 5xx is retried while attempts remain and
// returned as-is once they run out. Any other status, including non-429 4xx,
// is returned immediately. A *TimeoutError propagates immediately without
// retrying; other transport errors are retried with the same backoff, and
// the last one propagates when attempts run out.
func (f *Fetcher) FetchWithRetry(ctx context.Context, url string, opts Options) (*Response, error) {
	opts = opts.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		resp, err := f.Fetch(ctx, url, opts)
		if err != nil {
			var timeoutErr *TimeoutError
			if errors.As(err, &timeoutErr) {
				return nil, err
			}

			lastErr = err
			if attempt >= opts.MaxRetries {
				break
			}
			if waitErr := f.backoff(ctx, url, attempt, opts, "transport_error"); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		if retryableStatus(resp.StatusCode) && attempt < opts.MaxRetries {
			if waitErr := f.backoff(ctx, url, attempt, opts, strconv.Itoa(resp.StatusCode)); waitErr != nil {
				return nil, waitErr
			}
			continue
		}

		if attempt > 0 {
			f.logger.Info().
				Str("url", url).
				Int("attempt", attempt+1).
				Int("status", resp.StatusCode).
				Msg("Request settled after retry")
		}
		return resp, nil
	}

	clobRetryExhaustedTotal.Inc()
	f.logger.Warn().
		Str("url", url).
		Int("max_retries", opts.MaxRetries).
		Msg("Retry attempts exhausted")

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &RetriesExhaustedError{URL: url, MaxRetries: opts.MaxRetries}
}

// backoff waits BaseDelay * 2^attempt, observing context cancellation.
func (f *Fetcher) backoff(ctx context.Context, url string, attempt int, opts Options, trigger string) error {
	delay := opts.BaseDelay * (1 << attempt)

	clobRetriesTotal.WithLabelValues(trigger).Inc()
	clobRetryBackoffSeconds.Observe(delay.Seconds())
	f.logger.Debug().
		Str("url", url).
		Str("trigger", trigger).
		Int("attempt", attempt+1).
		Dur("backoff", delay).
		Msg("Retrying request after backoff")

	select {
	case <-ctx.Done():
		return fmt.Errorf("retry wait for %s: %w", url, ctx.Err())
	case <-time.After(delay):
		return nil
	}
}
