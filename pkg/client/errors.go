package client

import "fmt"

// UpstreamError is a terminal non-2xx response from the venue, with the
// status and body preserved for the caller.
type UpstreamError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Body)
}
