package domain

import "context"

// UserDirectory defines lookup and mutation of portal accounts. Lookups
// signal absence by returning (nil, nil); a non-nil error always means the
// underlying store failed, never "not found".
type UserDirectory interface {
	FindByCredential(ctx context.Context, identifier, password string) (*UserRecord, error)
	FindByPhone(ctx context.Context, phone string) (*UserRecord, error)
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	Create(ctx context.Context, user *UserRecord) error
	Update(ctx context.Context, user *UserRecord) error
}

// SessionStore persists the single session snapshot of one client scope.
// Load returns (nil, nil) when no session is stored or the stored data is
// malformed; a prior session must survive a process restart until Clear.
type SessionStore interface {
	Load(ctx context.Context, scope string) (*Session, error)
	Save(ctx context.Context, scope string, session *Session) error
	Clear(ctx context.Context, scope string) error
}

// ChallengeStore persists the at-most-one live OTP challenge of a client
// scope. Put replaces any previous challenge for the scope.
type ChallengeStore interface {
	Put(ctx context.Context, scope string, challenge *OTPChallenge) error
	Get(ctx context.Context, scope string) (*OTPChallenge, error)
	Consume(ctx context.Context, scope string) error
}

// FlagStore persists boolean client-scope flags (trial notices).
type FlagStore interface {
	Set(ctx context.Context, scope, name string) error
	IsSet(ctx context.Context, scope, name string) (bool, error)
}

// AuthService orchestrates credential/OTP verification and owns the session
// lifecycle for a client scope.
type AuthService interface {
	Login(ctx context.Context, scope, identifier, password string, rememberMe bool) (*Session, error)
	SendOTP(ctx context.Context, scope, phone string) (*OTPChallenge, error)
	VerifyOTP(ctx context.Context, scope, phone, code string) (*Session, error)
	Register(ctx context.Context, scope string, profile RegistrationProfile) (*Session, error)
	Logout(ctx context.Context, scope string) error
	SwitchSession(ctx context.Context, scope, identifier string) (*Session, error)
	UpdateProfile(ctx context.Context, scope string, fields ProfileUpdate) (*Session, error)
	CurrentSession(ctx context.Context, scope string) (*Session, error)
}

// CredentialVerifier is the pluggable credential-verification port. The
// demo implementation compares plaintext; the production one hashes.
type CredentialVerifier interface {
	Hash(secret string) (string, error)
	Verify(stored, presented string) bool
}

// CodeSource produces one-time codes. The demo source returns a fixed
// code; the production source draws from crypto/rand.
type CodeSource interface {
	Generate() (string, error)
}

// TokenService mints and validates the opaque session token stored
// alongside the session snapshot.
type TokenService interface {
	Mint(userID string, role Role, sessionID string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// TokenClaims are the claims carried by a session token.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// NotificationService delivers out-of-band messages to users.
type NotificationService interface {
	SendSMS(to, message string) error
}

// Notifier is the observable side channel for user-facing banners. It is
// not part of the core contract; operations succeed or fail regardless of
// what the notifier does.
type Notifier interface {
	Publish(event Event)
}

// TrialService tracks the demo-trial countdown state for a client scope.
type TrialService interface {
	Status(ctx context.Context, scope string) (*TrialStatus, error)
	Acknowledge(ctx context.Context, scope string, notice TrialNotice) error
}
