package client

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		body string
		want any
	}{
		{"bare array", `[1,2]`, []any{float64(1), float64(2)}},
		{"empty array", `[]`, []any{}},
		{"data envelope", `{"data":[1,2]}`, []any{float64(1), float64(2)}},
		{"data envelope with siblings", `{"data":["a"],"count":1}`, []any{"a"}},
		{"plain object", `{"foo":1}`, map[string]any{"foo": float64(1)}},
		{"data is not an array", `{"data":"nope"}`, map[string]any{"data": "nope"}},
		{"scalar", `42`, float64(42)},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.body))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%s) = %#v, want %#v", tt.body, got, tt.want)
			}
		})
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	_, err := Normalize([]byte(`{not json`))
	if err == nil {
		t.Error("Expected decode error, got nil")
	}
}
