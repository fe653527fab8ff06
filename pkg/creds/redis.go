package creds

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/polydash/clob-client/pkg/auth"
	"github.com/polydash/clob-client/pkg/logging"
)

// redisKeyPrefix namespaces credential records in Redis.
const redisKeyPrefix = "clob:creds:"

// RedisStore resolves credentials from Redis. Records are JSON-encoded
// auth.Credential values keyed by identity, written out-of-band by whatever
// provisions API keys.
type RedisStore struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed credential store.
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		redis:  redisClient,
		logger: logging.NewLogger("creds-redis"),
	}
}

// Lookup implements Store.
func (s *RedisStore) Lookup(ctx context.Context, identity string) (auth.Credential, error) {
	data, err := s.redis.Get(ctx, redisKeyPrefix+identity).Bytes()
	if err != nil {
		if err == redis.Nil {
			s.logger.Debug().Str("identity", identity).Msg("No credential record")
			return auth.Credential{}, fmt.Errorf("%w: %s", ErrMissingCredential, identity)
		}
		return auth.Credential{}, fmt.Errorf("redis get credential: %w", err)
	}

	var cred auth.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return auth.Credential{}, fmt.Errorf("decode credential record: %w", err)
	}

	return cred, nil
}

// Put stores a credential record for an identity. Intended for provisioning
// tools and tests; the client core never writes credentials.
func (s *RedisStore) Put(ctx context.Context, identity string, cred auth.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential record: %w", err)
	}

	if err := s.redis.Set(ctx, redisKeyPrefix+identity, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set credential: %w", err)
	}

	s.logger.Info().Str("identity", identity).Msg("Credential record stored")
	return nil
}

// Delete removes a credential record.
func (s *RedisStore) Delete(ctx context.Context, identity string) error {
	if err := s.redis.Del(ctx, redisKeyPrefix+identity).Err(); err != nil {
		return fmt.Errorf("redis del credential: %w", err)
	}
	return nil
}
