package fetch

import (
	"fmt"
	"time"
)

// TimeoutError reports that a single attempt exceeded its wall-clock
// deadline. The retry policy never retries it; a dead or overloaded path is
// not worth hammering.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %s", e.URL, e.Timeout)
}

// RetriesExhaustedError reports that every attempt failed without ever
// producing a response or a concrete transport error to propagate.
type RetriesExhaustedError struct {
	URL        string
	MaxRetries int
}

// Error implements the error interface.
func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("all retries exhausted for %s after %d retries", e.URL, e.MaxRetries)
}

// retryableStatus reports whether a status code is transient: 429 and all
// 5xx are retried, everything else is terminal.
func retryableStatus(status int) bool {
	return status == 429 || status >= 500
}
