package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for fetch operations.
var (
	clobRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clob_requests_total",
		Help: "Total CLOB requests by status code",
	}, []string{"status"})

	clobRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clob_request_duration_seconds",
		Help:    "CLOB request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	clobTimeoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clob_request_timeouts_total",
		Help: "Total requests aborted by the per-attempt deadline",
	})

	clobRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clob_retries_total",
		Help: "Total retry attempts by trigger (status or transport error)",
	}, []string{"trigger"})

	clobRetryBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "clob_retry_backoff_seconds",
		Help:    "Backoff duration before retries",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	clobRetryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clob_retry_exhausted_total",
		Help: "Total requests that ran out of retry attempts",
	})

	clobBatchInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "clob_batch_in_flight_requests",
		Help: "Requests currently admitted by the batch dispatcher",
	})

	clobBatchResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clob_batch_results_total",
		Help: "Batch fetch results by outcome",
	}, []string{"outcome"})
)
