package auth

import "errors"

// ErrInvalidCredential is returned when a credential's secret is not valid
// standard base64. It is fatal; the request is never attempted.
var ErrInvalidCredential = errors.New("invalid credential: secret is not valid base64")
