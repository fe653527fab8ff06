package fetch

import (
	"strings"
	"testing"
	"time"
)

func TestTimeoutError_Message(t *testing.T) {
	err := &TimeoutError{URL: "https://clob.polymarket.com/markets", Timeout: 10 * time.Second}

	msg := err.Error()
	if !strings.Contains(msg, "/markets") {
		t.Errorf("Error message %q missing URL", msg)
	}
	if !strings.Contains(msg, "10s") {
		t.Errorf("Error message %q missing timeout", msg)
	}
}

func TestRetriesExhaustedError_Message(t *testing.T) {
	err := &RetriesExhaustedError{URL: "https://clob.polymarket.com/markets", MaxRetries: 3}

	msg := err.Error()
	if !strings.Contains(msg, "/markets") {
		t.Errorf("Error message %q missing URL", msg)
	}
	if !strings.Contains(msg, "3") {
		t.Errorf("Error message %q missing retry count", msg)
	}
}

func TestRetryableStatus(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, false},
		{201, false},
		{400, false},
		{401, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{520, true},
	}

	for _, tt := range tests {
		if got := retryableStatus(tt.status); got != tt.want {
			t.Errorf("retryableStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
