// Package client provides the authenticated CLOB request executor: it
// resolves credentials, signs each call, issues it through the
// timeout-bounded fetcher, and normalizes the venue's response envelope.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/polydash/clob-client/pkg/auth"
	"github.com/polydash/clob-client/pkg/creds"
	"github.com/polydash/clob-client/pkg/fetch"
	"github.com/polydash/clob-client/pkg/logging"
)

// DefaultBaseURL is the venue's CLOB REST host.
const DefaultBaseURL = "https://clob.polymarket.com"

// Prometheus metrics for authenticated executor operations.
var (
	clobAuthRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clob_auth_requests_total",
		Help: "Authenticated CLOB requests by method and outcome",
	}, []string{"method", "outcome"})

	clobAuthRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clob_auth_request_duration_seconds",
		Help:    "Authenticated CLOB request duration in seconds by method",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method"})
)

// Config holds the executor configuration.
type Config struct {
	// BaseURL is the venue host; DefaultBaseURL when empty.
	BaseURL string

	// Address is the account address sent as POLY_ADDRESS.
	Address string

	// Credentials resolves per-identity API credentials.
	Credentials creds.Store

	// HTTPClient is optional; a plain http.Client when nil.
	HTTPClient *http.Client

	// Fetch configures timeout and retry behavior of the underlying
	// fetch layer.
	Fetch fetch.Options
}

// Client is the authenticated request executor.
type Client struct {
	baseURL string
	address string
	store   creds.Store
	signer  *auth.Signer
	fetcher *fetch.Fetcher
	opts    fetch.Options
	logger  zerolog.Logger
}

// New creates an executor.
func New(cfg Config) (*Client, error) {
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("account address is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		address: cfg.Address,
		store:   cfg.Credentials,
		signer:  auth.NewSigner(),
		fetcher: fetch.NewFetcher(cfg.HTTPClient),
		opts:    cfg.Fetch,
		logger:  logging.NewLogger("clob-client"),
	}, nil
}

// ExecuteAuthenticated issues one signed call and returns the normalized
// JSON value (see Normalize for the envelope rules). path must include any
// query string; the signature covers it verbatim. A nil body sends no
// payload.
//
// Headers are signed with the clock at call time and used exactly once;
// nothing about the signature outlives this call.
func (c *Client) ExecuteAuthenticated(ctx context.Context, identity, method, path string, body *string) (any, error) {
	start := time.Now()
	defer func() {
		clobAuthRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	cred, err := c.store.Lookup(ctx, identity)
	if err != nil {
		clobAuthRequestsTotal.WithLabelValues(method, "credential_error").Inc()
		c.logger.Error().Err(err).Str("identity", identity).Msg("Credential lookup failed")
		return nil, err
	}

	headers, err := c.signer.Sign(c.address, cred, method, path, body)
	if err != nil {
		clobAuthRequestsTotal.WithLabelValues(method, "sign_error").Inc()
		return nil, err
	}

	var payload io.Reader
	if body != nil {
		payload = strings.NewReader(*body)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	headers.Apply(req.Header)

	c.logger.Debug().
		Str("identity", identity).
		Str("method", method).
		Str("path", path).
		Msg("Executing authenticated request")

	resp, err := c.fetcher.Do(ctx, req, c.opts)
	if err != nil {
		clobAuthRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		return nil, err
	}

	if !resp.OK() {
		clobAuthRequestsTotal.WithLabelValues(method, "upstream_error").Inc()
		c.logger.Warn().
			Str("identity", identity).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Upstream rejected request")
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(resp.Body)}
	}

	value, err := Normalize(resp.Body)
	if err != nil {
		clobAuthRequestsTotal.WithLabelValues(method, "decode_error").Inc()
		return nil, err
	}

	clobAuthRequestsTotal.WithLabelValues(method, "ok").Inc()
	return value, nil
}

// Get issues an authenticated GET.
func (c *Client) Get(ctx context.Context, identity, path string) (any, error) {
	return c.ExecuteAuthenticated(ctx, identity, http.MethodGet, path, nil)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, identity, path, body string) (any, error) {
	return c.ExecuteAuthenticated(ctx, identity, http.MethodPost, path, &body)
}

// Delete issues an authenticated DELETE. body may be nil.
func (c *Client) Delete(ctx context.Context, identity, path string, body *string) (any, error) {
	return c.ExecuteAuthenticated(ctx, identity, http.MethodDelete, path, body)
}

// Fetcher exposes the underlying fetch layer for unauthenticated calls and
// batch dispatch against public endpoints.
func (c *Client) Fetcher() *fetch.Fetcher {
	return c.fetcher
}

// BaseURL returns the configured venue host.
func (c *Client) BaseURL() string {
	return c.baseURL
}
