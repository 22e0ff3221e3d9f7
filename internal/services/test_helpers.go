package services

import (
	"context"
	"testing"

	"github.com/you/hmsauth/domain"
	"github.com/you/hmsauth/internal/mocks"
)

// authDeps bundles the mocked collaborators of an auth service under test.
type authDeps struct {
	directory  *mocks.MockUserDirectory
	sessions   *mocks.MockSessionStore
	challenges *mocks.MockChallengeStore
	verifier   *mocks.MockCredentialVerifier
	tokens     *mocks.MockTokenService
	codes      *mocks.MockCodeSource
	sms        *mocks.MockNotificationService
	notifier   *mocks.MockNotifier
}

func newAuthDeps() *authDeps {
	return &authDeps{
		directory:  mocks.NewMockUserDirectory(),
		sessions:   mocks.NewMockSessionStore(),
		challenges: mocks.NewMockChallengeStore(),
		verifier:   mocks.NewMockCredentialVerifier(),
		tokens:     mocks.NewMockTokenService(),
		codes:      mocks.NewMockCodeSource(),
		sms:        mocks.NewMockNotificationService(),
		notifier:   mocks.NewMockNotifier(),
	}
}

func (d *authDeps) service(allowSwitch bool) domain.AuthService {
	return NewAuthService(d.directory, d.sessions, d.challenges, d.verifier, d.tokens, d.codes, d.sms, d.notifier, allowSwitch)
}

// useMemorySessions swaps the session mock for an in-memory store so state
// survives across calls within a test.
func (d *authDeps) useMemorySessions() *memSessions {
	mem := newMemSessions()
	d.sessions.LoadFunc = mem.Load
	d.sessions.SaveFunc = mem.Save
	d.sessions.ClearFunc = mem.Clear
	return mem
}

// useMemoryChallenges does the same for the challenge store.
func (d *authDeps) useMemoryChallenges() *memChallenges {
	mem := newMemChallenges()
	d.challenges.PutFunc = mem.Put
	d.challenges.GetFunc = mem.Get
	d.challenges.ConsumeFunc = mem.Consume
	return mem
}

// memSessions is an in-memory SessionStore holding value copies, mirroring
// the persistence contract of the real store.
type memSessions struct {
	byScope map[string]domain.Session
}

func newMemSessions() *memSessions {
	return &memSessions{byScope: make(map[string]domain.Session)}
}

func (m *memSessions) Load(ctx context.Context, scope string) (*domain.Session, error) {
	s, ok := m.byScope[scope]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (m *memSessions) Save(ctx context.Context, scope string, session *domain.Session) error {
	copied := *session
	// The real snapshot never stores the credential.
	copied.User.Credential = ""
	m.byScope[scope] = copied
	return nil
}

func (m *memSessions) Clear(ctx context.Context, scope string) error {
	delete(m.byScope, scope)
	return nil
}

// memChallenges is an in-memory ChallengeStore.
type memChallenges struct {
	byScope map[string]domain.OTPChallenge
}

func newMemChallenges() *memChallenges {
	return &memChallenges{byScope: make(map[string]domain.OTPChallenge)}
}

func (m *memChallenges) Put(ctx context.Context, scope string, challenge *domain.OTPChallenge) error {
	m.byScope[scope] = *challenge
	return nil
}

func (m *memChallenges) Get(ctx context.Context, scope string) (*domain.OTPChallenge, error) {
	c, ok := m.byScope[scope]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

func (m *memChallenges) Consume(ctx context.Context, scope string) error {
	delete(m.byScope, scope)
	return nil
}

func seededDoctor() *domain.UserRecord {
	return &domain.UserRecord{
		ID:         "usr-1002",
		Name:       "Dr. Suman Dixit",
		Email:      "suman.dixit@medicare.com",
		Phone:      "+911234567891",
		Credential: "demo",
		Role:       domain.RoleDoctor,
		Department: "Cardiology",
	}
}

func seededPatient() *domain.UserRecord {
	return &domain.UserRecord{
		ID:         "usr-1001",
		Name:       "Pavan Ponnella",
		Email:      "pavan.ponnella@medicare.com",
		Phone:      "+911234567890",
		Credential: "demo",
		Role:       domain.RolePatient,
	}
}

func mustSession(t *testing.T, session *domain.Session, err error) *domain.Session {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == nil {
		t.Fatal("session is nil")
	}
	return session
}

// mustLogin fails the test unless the login succeeds.
func mustLogin(t *testing.T, svc domain.AuthService, scope, identifier, password string) *domain.Session {
	t.Helper()
	session, err := svc.Login(context.Background(), scope, identifier, password, false)
	return mustSession(t, session, err)
}
