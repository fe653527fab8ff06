// Package metrics provides the centralized Prometheus registry reference for
// the CLOB client. Metrics are defined in their owning packages (fetch,
// client) via promauto to keep registration next to the instrumented code.
//
// This package documents all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the CLOB client.
// All metrics are automatically registered via promauto in their packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Fetch Metrics (pkg/fetch):
//   - clob_requests_total{status} (Counter): Completed attempts by HTTP status
//   - clob_request_duration_seconds (Histogram): Per-attempt duration
//   - clob_request_timeouts_total (Counter): Attempts aborted by the deadline
//
// Retry Metrics (pkg/fetch):
//   - clob_retries_total{trigger} (Counter): Retry attempts by trigger
//     (a retryable status code or "transport_error")
//   - clob_retry_backoff_seconds (Histogram): Backoff durations
//   - clob_retry_exhausted_total (Counter): Requests that ran out of attempts
//
// Batch Metrics (pkg/fetch):
//   - clob_batch_in_flight_requests (Gauge): Currently admitted requests
//   - clob_batch_results_total{outcome} (Counter): Results by outcome
//     ("response" or "error")
//
// Executor Metrics (pkg/client):
//   - clob_auth_requests_total{method, outcome} (Counter): Authenticated
//     calls by outcome (ok, credential_error, sign_error, transport_error,
//     upstream_error, decode_error)
//   - clob_auth_request_duration_seconds{method} (Histogram): End-to-end
//     authenticated call duration
//
// Example Prometheus Queries:
//
//   # Timeout rate
//   rate(clob_request_timeouts_total[5m]) / rate(clob_requests_total[5m])
//
//   # Retry pressure by trigger
//   sum by (trigger) (rate(clob_retries_total[5m]))
//
//   # Authenticated error rate
//   sum(rate(clob_auth_requests_total{outcome!="ok"}[5m]))
//
//   # P95 attempt latency
//   histogram_quantile(0.95, rate(clob_request_duration_seconds_bucket[5m]))
