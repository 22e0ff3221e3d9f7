package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/you/hmsauth/domain"
)

// Per-scope storage key suffixes. The names mirror the browser keys the
// portal originally wrote to local storage.
const (
	keyCurrentUser  = "current-user"
	keySessionToken = "session-token"
	keyRememberMe   = "remember-me-flag"
)

// SessionStoreImpl implements domain.SessionStore using Redis. Each client
// scope owns exactly one session snapshot, split across the current-user,
// session-token and remember-me-flag keys.
type SessionStoreImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionStore creates a new Redis-backed session store. A zero ttl
// keeps the session until it is explicitly cleared.
func NewSessionStore(client *redis.Client, ttl time.Duration) domain.SessionStore {
	return &SessionStoreImpl{
		client: client,
		prefix: "hms:",
		ttl:    ttl,
	}
}

func (s *SessionStoreImpl) key(scope, name string) string {
	return s.prefix + scope + ":" + name
}

// Save implements domain.SessionStore. The whole snapshot is written so a
// later process start can restore it.
func (s *SessionStoreImpl) Save(ctx context.Context, scope string, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(scope, keyCurrentUser), data, s.ttl)
	pipe.Set(ctx, s.key(scope, keySessionToken), session.Token, s.ttl)
	pipe.Set(ctx, s.key(scope, keyRememberMe), fmt.Sprintf("%t", session.RememberMe), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Load implements domain.SessionStore. Absent or malformed stored data is
// treated as "no session", never as an error.
func (s *SessionStoreImpl) Load(ctx context.Context, scope string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.key(scope, keyCurrentUser)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		log.Warn().Str("scope", scope).Err(err).Msg("discarding malformed session snapshot")
		return nil, nil
	}
	if session.User.ID == "" {
		log.Warn().Str("scope", scope).Msg("discarding session snapshot without user")
		return nil, nil
	}

	if token, err := s.client.Get(ctx, s.key(scope, keySessionToken)).Result(); err == nil {
		session.Token = token
	}
	return &session, nil
}

// Clear implements domain.SessionStore. Deleting absent keys is a no-op,
// which makes logout idempotent.
func (s *SessionStoreImpl) Clear(ctx context.Context, scope string) error {
	return s.client.Del(ctx,
		s.key(scope, keyCurrentUser),
		s.key(scope, keySessionToken),
		s.key(scope, keyRememberMe),
	).Err()
}
