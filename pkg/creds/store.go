// Package creds resolves API credentials per identity. The client core only
// ever sees the Store capability; where the credentials actually live is a
// deployment concern.
package creds

import (
	"context"
	"errors"

	"github.com/polydash/clob-client/pkg/auth"
)

// ErrMissingCredential is returned when no credential is on file for an
// identity. It is fatal; the authenticated call is never attempted.
var ErrMissingCredential = errors.New("no credential on file")

// Store looks up the credential for an identity.
//
// Lookup returns ErrMissingCredential (possibly wrapped) when the identity is
// unknown. Implementations must never log secret material.
type Store interface {
	Lookup(ctx context.Context, identity string) (auth.Credential, error)
}

// StaticStore is an in-memory Store for tests and single-identity tools.
type StaticStore map[string]auth.Credential

// Lookup implements Store.
func (s StaticStore) Lookup(_ context.Context, identity string) (auth.Credential, error) {
	cred, ok := s[identity]
	if !ok {
		return auth.Credential{}, ErrMissingCredential
	}
	return cred, nil
}
