package creds

import (
	"context"
	"os"
	"strings"

	"github.com/polydash/clob-client/pkg/auth"
)

// Environment variable suffixes for credential fields. The full name is
// CLOB_<IDENTITY>_<suffix> with the identity upper-cased and dashes mapped
// to underscores, e.g. CLOB_MAKER_BOT_API_KEY.
const (
	envPrefix           = "CLOB_"
	envSuffixKey        = "_API_KEY"
	envSuffixSecret     = "_API_SECRET"
	envSuffixPassphrase = "_API_PASSPHRASE"
)

// EnvStore resolves credentials from the process environment. It reads the
// variables on every lookup so rotated values are picked up without restart.
type EnvStore struct{}

// NewEnvStore creates an environment-backed credential store.
func NewEnvStore() *EnvStore {
	return &EnvStore{}
}

// Lookup implements Store. An identity is considered absent when any of its
// three variables is unset or empty.
func (s *EnvStore) Lookup(_ context.Context, identity string) (auth.Credential, error) {
	name := envName(identity)

	cred := auth.Credential{
		APIKey:        os.Getenv(envPrefix + name + envSuffixKey),
		APISecret:     os.Getenv(envPrefix + name + envSuffixSecret),
		APIPassphrase: os.Getenv(envPrefix + name + envSuffixPassphrase),
	}
	if cred.APIKey == "" || cred.APISecret == "" || cred.APIPassphrase == "" {
		return auth.Credential{}, ErrMissingCredential
	}

	return cred, nil
}

func envName(identity string) string {
	return strings.ToUpper(strings.ReplaceAll(identity, "-", "_"))
}
