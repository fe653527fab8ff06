package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polydash/clob-client/internal/testutil"
	"github.com/polydash/clob-client/pkg/client"
	"github.com/polydash/clob-client/pkg/creds"
	"github.com/polydash/clob-client/pkg/fetch"
)

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func newProxyClient(t *testing.T, mock *testutil.MockCLOB) *client.Client {
	t.Helper()

	c, err := client.New(client.Config{
		BaseURL: mock.URL(),
		Address: "0xabc",
		Credentials: creds.StaticStore{
			"default": {
				APIKey:        "key",
				APISecret:     "c2VjcmV0",
				APIPassphrase: "phrase",
			},
		},
		Fetch: fetch.Options{Timeout: 2 * time.Second},
	})
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	return c
}

func TestClobProxyHandler(t *testing.T) {
	mock := testutil.NewMockCLOB()
	defer mock.Close()
	mock.SetResponse("/markets", testutil.NewDataEnvelopeResponse(`[{"id": "m1"}]`))

	handler := clobProxyHandler(newProxyClient(t, mock), "default")

	req := httptest.NewRequest("GET", "/clob/markets", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var value []any
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(value) != 1 {
		t.Errorf("Got %d entries, want 1 (data envelope unwrapped)", len(value))
	}
}

func TestClobProxyHandler_QueryStringForwarded(t *testing.T) {
	mock := testutil.NewMockCLOB()
	defer mock.Close()

	var gotQuery string
	mock.SetHandler("/markets", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	handler := clobProxyHandler(newProxyClient(t, mock), "default")

	req := httptest.NewRequest("GET", "/clob/markets?next_cursor=AA%3D%3D", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if gotQuery != "next_cursor=AA%3D%3D" {
		t.Errorf("Forwarded query = %q, want the original query string", gotQuery)
	}
}

func TestWriteError_UpstreamStatusPreserved(t *testing.T) {
	w := httptest.NewRecorder()

	writeError(w, &client.UpstreamError{Status: http.StatusUnauthorized, Body: `{"error":"bad sig"}`})

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", resp.StatusCode)
	}
	if string(body) != `{"error":"bad sig"}` {
		t.Errorf("Body = %q, want the upstream body", body)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"timeout", &fetch.TimeoutError{URL: "u", Timeout: time.Second}, http.StatusGatewayTimeout},
		{"missing credential", creds.ErrMissingCredential, http.StatusUnauthorized},
		{"other", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeError(w, tt.err)
			if got := w.Result().StatusCode; got != tt.status {
				t.Errorf("Status = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CLOB_PROXY_TEST_VAR", "set")

	if got := getEnv("CLOB_PROXY_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("getEnv = %q, want %q", got, "set")
	}
	if got := getEnv("CLOB_PROXY_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q, want %q", got, "fallback")
	}
}
