package client

import (
	"encoding/json"
	"fmt"
)

// Normalize decodes a venue response body and flattens its inconsistent
// envelope. The venue returns either a bare JSON array, an object with a
// "data" array field, or some other object shape. In priority order:
//
//  1. a bare array is returned as-is,
//  2. an object whose "data" field is an array returns that array,
//  3. any other value is returned unchanged.
func Normalize(body []byte) (any, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if arr, ok := value.([]any); ok {
		return arr, nil
	}
	if obj, ok := value.(map[string]any); ok {
		if data, ok := obj["data"].([]any); ok {
			return data, nil
		}
	}
	return value, nil
}
