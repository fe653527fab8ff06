package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/polydash/clob-client/pkg/logging"
)

// Response is a fully-drained HTTP response. The body is read inside the
// attempt's deadline so the caller never holds a stream tied to an already
// cancelled context.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher executes HTTP requests with per-attempt deadlines. It holds no
// per-request state; one Fetcher is safe for concurrent use.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewFetcher creates a fetcher. A nil httpClient falls back to a plain
// http.Client; per-attempt deadlines come from Options, not the client.
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Fetcher{
		httpClient: httpClient,
		logger:     logging.NewLogger("clob-fetch"),
	}
}

// Fetch performs a single GET bounded by opts.Timeout. It never retries.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts Options) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return f.Do(ctx, req, opts)
}

// Do performs one attempt of req bounded by opts.Timeout. Deadline expiry
// surfaces as *TimeoutError, distinct from every other transport failure;
// cancellation of the parent context is reported as the parent's error, not
// as a timeout. The deadline timer is always released before returning.
func (f *Fetcher) Do(ctx context.Context, req *http.Request, opts Options) (*Response, error) {
	opts = opts.withDefaults()

	attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		clobRequestDuration.Observe(time.Since(start).Seconds())
	}()

	url := req.URL.String()
	resp, err := f.httpClient.Do(req.WithContext(attemptCtx))
	if err != nil {
		return nil, f.classifyTransportError(ctx, attemptCtx, url, opts.Timeout, err)
	}
	defer resp.Body.Close()

	// Drain inside the deadline; a stall while streaming the body is the
	// same dead path as a stall before the first byte.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.classifyTransportError(ctx, attemptCtx, url, opts.Timeout, err)
	}

	clobRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	f.logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Request complete")

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// classifyTransportError separates the deadline-exceeded case from other
// transport failures.
func (f *Fetcher) classifyTransportError(ctx, attemptCtx context.Context, url string, timeout time.Duration, err error) error {
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		clobTimeoutsTotal.Inc()
		f.logger.Warn().
			Str("url", url).
			Dur("timeout", timeout).
			Msg("Request deadline exceeded")
		return &TimeoutError{URL: url, Timeout: timeout}
	}

	f.logger.Error().Err(err).Str("url", url).Msg("Request failed")
	return fmt.Errorf("fetch %s: %w", url, err)
}
