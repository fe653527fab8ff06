// Package fetch provides the network-resilience primitives for talking to
// the CLOB: a timeout-bounded single fetch, status-aware exponential-backoff
// retry, and concurrency-limited batch dispatch.
package fetch

import "time"

// Defaults applied by Options.withDefaults.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxRetries  = 3
	DefaultBaseDelay   = 1 * time.Second
	DefaultConcurrency = 5
)

// Options configures fetch behavior. Unset fields fall back to the
// documented defaults; MaxRetries=0 is a valid setting meaning a single
// attempt, only a negative value is replaced.
type Options struct {
	// Timeout is the hard wall-clock deadline per attempt.
	Timeout time.Duration

	// MaxRetries is the number of re-attempts after the initial one, so
	// MaxRetries=3 means up to 4 attempts total.
	MaxRetries int

	// BaseDelay is the first backoff delay; each retry doubles it.
	BaseDelay time.Duration

	// Concurrency caps the number of in-flight requests in BatchFetch.
	Concurrency int
}

// DefaultOptions returns the default fetch configuration.
func DefaultOptions() Options {
	return Options{
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		BaseDelay:   DefaultBaseDelay,
		Concurrency: DefaultConcurrency,
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	return o
}
