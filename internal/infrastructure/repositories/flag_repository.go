package repositories

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/you/hmsauth/domain"
)

// FlagStoreImpl implements domain.FlagStore using Redis. Flags are
// boolean-as-string per-scope keys (trial-notice-seen, trial-warning-shown).
type FlagStoreImpl struct {
	client *redis.Client
	prefix string
}

// NewFlagStore creates a new Redis-backed flag store.
func NewFlagStore(client *redis.Client) domain.FlagStore {
	return &FlagStoreImpl{client: client, prefix: "hms:"}
}

// Set implements domain.FlagStore.
func (s *FlagStoreImpl) Set(ctx context.Context, scope, name string) error {
	return s.client.Set(ctx, s.prefix+scope+":"+name, "true", 0).Err()
}

// IsSet implements domain.FlagStore.
func (s *FlagStoreImpl) IsSet(ctx context.Context, scope, name string) (bool, error) {
	val, err := s.client.Get(ctx, s.prefix+scope+":"+name).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "true", nil
}
