// Package testutil provides testing utilities for the CLOB client.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mock CLOB endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockCLOB is a configurable mock CLOB server for testing. Besides canned
// responses it tracks request counts, the last seen headers, and the peak
// number of simultaneously handled requests.
type MockCLOB struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	requestCount      int
	lastRequestHeader http.Header

	inFlight    int
	maxInFlight int
}

// NewMockCLOB creates a new mock CLOB server.
func NewMockCLOB() *MockCLOB {
	mock := &MockCLOB{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.lastRequestHeader = r.Header.Clone()
		mock.inFlight++
		if mock.inFlight > mock.maxInFlight {
			mock.maxInFlight = mock.inFlight
		}
		mock.mu.Unlock()

		defer func() {
			mock.mu.Lock()
			mock.inFlight--
			mock.mu.Unlock()
		}()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockCLOB) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCLOB) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockCLOB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.lastRequestHeader = nil
	m.maxInFlight = 0
}

// SetHandler sets a custom handler for a specific path.
func (m *MockCLOB) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockCLOB) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// RequestCount returns the number of requests made to the server.
func (m *MockCLOB) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// LastRequestHeader returns the headers of the most recent request.
func (m *MockCLOB) LastRequestHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRequestHeader
}

// MaxInFlight returns the peak number of simultaneously handled requests
// since the last Reset.
func (m *MockCLOB) MaxInFlight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxInFlight
}

// defaultHandler provides a default CLOB-like JSON response.
func (m *MockCLOB) defaultHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// NewArrayResponse creates a 200 response with a bare JSON array body.
func NewArrayResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewDataEnvelopeResponse creates a 200 response wrapping the array in the
// venue's {"data": [...], "next_cursor": ...} envelope.
func NewDataEnvelopeResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data": ` + data + `, "next_cursor": "LTE="}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "too many requests"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewServerErrorResponse creates a 503 Service Unavailable response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       `{"error": "service unavailable"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewFlakyHandler fails with failStatus for the first failures requests to
// it, then succeeds with body.
func NewFlakyHandler(failures int, failStatus int, body string) http.HandlerFunc {
	var mu sync.Mutex
	seen := 0
	return func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen++
		failing := seen <= failures
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if failing {
			w.WriteHeader(failStatus)
			w.Write([]byte(`{"error": "transient"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}
