package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/you/hmsauth/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() {
		mr.Close()
	})

	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func testSession() *domain.Session {
	return &domain.Session{
		ID: "sess_abc123",
		User: domain.UserRecord{
			ID:    "usr-1001",
			Name:  "Pavan Ponnella",
			Email: "pavan.ponnella@medicare.com",
			Phone: "+911234567890",
			Role:  domain.RolePatient,
		},
		Token:      "jwt-token-value",
		RememberMe: true,
		CreatedAt:  time.Now().Truncate(time.Second),
	}
}

func TestSessionStoreImpl_SaveAndLoad(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	session := testSession()
	if err := store.Save(ctx, "client-a", session); err != nil {
		t.Fatalf("save: %v", err)
	}

	// All three browser-named keys exist under the scope prefix.
	for _, name := range []string{"current-user", "session-token", "remember-me-flag"} {
		key := "hms:client-a:" + name
		if client.Exists(ctx, key).Val() != 1 {
			t.Errorf("expected key %s to exist", key)
		}
	}
	if val := client.Get(ctx, "hms:client-a:remember-me-flag").Val(); val != "true" {
		t.Errorf("remember-me-flag = %q, want true", val)
	}

	loaded, err := store.Load(ctx, "client-a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatal("loaded session is nil")
	}
	if loaded.ID != session.ID {
		t.Errorf("id = %s, want %s", loaded.ID, session.ID)
	}
	if loaded.User.ID != "usr-1001" || loaded.User.Role != domain.RolePatient {
		t.Errorf("user not restored: %+v", loaded.User)
	}
	if loaded.Token != "jwt-token-value" {
		t.Errorf("token not restored from its own key: %q", loaded.Token)
	}
	if !loaded.RememberMe {
		t.Error("remember-me not restored")
	}
}

func TestSessionStoreImpl_SurvivesNewStoreInstance(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()

	if err := NewSessionStore(client, 0).Save(ctx, "client-a", testSession()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh store over the same backend sees the snapshot, the way a
	// restarted process would.
	loaded, err := NewSessionStore(client, 0).Load(ctx, "client-a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.ID != "sess_abc123" {
		t.Fatalf("session not restored across instances: %+v", loaded)
	}
}

func TestSessionStoreImpl_LoadAbsent(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t), 0)

	loaded, err := store.Load(context.Background(), "client-a")
	if err != nil {
		t.Fatalf("expected no error for absent session, got %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil session, got %+v", loaded)
	}
}

func TestSessionStoreImpl_LoadMalformed(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	tests := []struct {
		name   string
		stored string
	}{
		{name: "not json", stored: "{{{corrupted"},
		{name: "json without user", stored: `{"id":"sess_x","user":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client.Set(ctx, "hms:client-a:current-user", tt.stored, 0)

			loaded, err := store.Load(ctx, "client-a")
			if err != nil {
				t.Fatalf("malformed data must read as absent, got error %v", err)
			}
			if loaded != nil {
				t.Errorf("expected nil session, got %+v", loaded)
			}
		})
	}
}

func TestSessionStoreImpl_ClearIsIdempotent(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	if err := store.Save(ctx, "client-a", testSession()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx, "client-a"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if client.Exists(ctx, "hms:client-a:current-user").Val() != 0 {
		t.Error("session keys survived clear")
	}
	// Clearing again, with nothing stored, is still a no-op.
	if err := store.Clear(ctx, "client-a"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSessionStoreImpl_ScopesDoNotOverlap(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	if err := store.Save(ctx, "client-a", testSession()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx, "client-b"); err != nil {
		t.Fatalf("clear other scope: %v", err)
	}

	loaded, err := store.Load(ctx, "client-a")
	if err != nil || loaded == nil {
		t.Fatalf("clearing one scope disturbed another: (%+v, %v)", loaded, err)
	}
	if other, _ := store.Load(ctx, "client-b"); other != nil {
		t.Errorf("unexpected session in scope client-b: %+v", other)
	}
}

func TestSessionStoreImpl_TokenNotInsideSnapshot(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	if err := store.Save(ctx, "client-a", testSession()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The token lives only under its own key; the JSON snapshot must not
	// duplicate it.
	snapshot := client.Get(ctx, "hms:client-a:current-user").Val()
	if snapshot == "" {
		t.Fatal("snapshot missing")
	}
	if strings.Contains(snapshot, "jwt-token-value") {
		t.Errorf("snapshot leaks the token: %s", snapshot)
	}
	if client.Get(ctx, "hms:client-a:session-token").Val() != "jwt-token-value" {
		t.Error("token key missing")
	}
}
