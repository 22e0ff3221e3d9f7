package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/hmsauth/domain"
)

const keyOTPChallenge = "otp-challenge"

// ChallengeStoreImpl implements domain.ChallengeStore using Redis. The
// per-scope key holds at most one challenge; writing a new one supersedes
// whatever was there.
type ChallengeStoreImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewChallengeStore creates a new Redis-backed challenge store.
func NewChallengeStore(client *redis.Client, ttl time.Duration) domain.ChallengeStore {
	return &ChallengeStoreImpl{
		client: client,
		prefix: "hms:",
		ttl:    ttl,
	}
}

func (s *ChallengeStoreImpl) key(scope string) string {
	return s.prefix + scope + ":" + keyOTPChallenge
}

// Put implements domain.ChallengeStore.
func (s *ChallengeStoreImpl) Put(ctx context.Context, scope string, challenge *domain.OTPChallenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}
	return s.client.Set(ctx, s.key(scope), data, s.ttl).Err()
}

// Get implements domain.ChallengeStore. Absence reads as (nil, nil).
func (s *ChallengeStoreImpl) Get(ctx context.Context, scope string) (*domain.OTPChallenge, error) {
	data, err := s.client.Get(ctx, s.key(scope)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read challenge: %w", err)
	}

	var challenge domain.OTPChallenge
	if err := json.Unmarshal([]byte(data), &challenge); err != nil {
		return nil, nil
	}
	return &challenge, nil
}

// Consume implements domain.ChallengeStore.
func (s *ChallengeStoreImpl) Consume(ctx context.Context, scope string) error {
	return s.client.Del(ctx, s.key(scope)).Err()
}
