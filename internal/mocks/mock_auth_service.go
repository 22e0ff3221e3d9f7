package mocks

import (
	"context"

	"github.com/you/hmsauth/domain"
)

// MockAuthService implements domain.AuthService for testing handlers.
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, scope, identifier, password string, rememberMe bool) (*domain.Session, error)
	SendOTPFunc        func(ctx context.Context, scope, phone string) (*domain.OTPChallenge, error)
	VerifyOTPFunc      func(ctx context.Context, scope, phone, code string) (*domain.Session, error)
	RegisterFunc       func(ctx context.Context, scope string, profile domain.RegistrationProfile) (*domain.Session, error)
	LogoutFunc         func(ctx context.Context, scope string) error
	SwitchSessionFunc  func(ctx context.Context, scope, identifier string) (*domain.Session, error)
	UpdateProfileFunc  func(ctx context.Context, scope string, fields domain.ProfileUpdate) (*domain.Session, error)
	CurrentSessionFunc func(ctx context.Context, scope string) (*domain.Session, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors.
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login authenticates by identifier and password.
func (m *MockAuthService) Login(ctx context.Context, scope, identifier, password string, rememberMe bool) (*domain.Session, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, scope, identifier, password, rememberMe)
	}
	// Default behavior: reject
	return nil, domain.ErrInvalidCredentials
}

// SendOTP opens an OTP challenge.
func (m *MockAuthService) SendOTP(ctx context.Context, scope, phone string) (*domain.OTPChallenge, error) {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, scope, phone)
	}
	// Default behavior: minimal challenge
	return &domain.OTPChallenge{Phone: phone, Code: "123456"}, nil
}

// VerifyOTP resolves the live challenge.
func (m *MockAuthService) VerifyOTP(ctx context.Context, scope, phone, code string) (*domain.Session, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, scope, phone, code)
	}
	// Default behavior: no challenge open
	return nil, domain.ErrNoActiveChallenge
}

// Register creates an account and signs it in.
func (m *MockAuthService) Register(ctx context.Context, scope string, profile domain.RegistrationProfile) (*domain.Session, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, scope, profile)
	}
	// Default behavior: incomplete
	return nil, domain.ErrIncompleteProfile
}

// Logout clears the session.
func (m *MockAuthService) Logout(ctx context.Context, scope string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, scope)
	}
	// Default behavior: succeed
	return nil
}

// SwitchSession replaces the session with another account's.
func (m *MockAuthService) SwitchSession(ctx context.Context, scope, identifier string) (*domain.Session, error) {
	if m.SwitchSessionFunc != nil {
		return m.SwitchSessionFunc(ctx, scope, identifier)
	}
	// Default behavior: disabled
	return nil, domain.ErrSwitchDisabled
}

// UpdateProfile merges fields into the signed-in account.
func (m *MockAuthService) UpdateProfile(ctx context.Context, scope string, fields domain.ProfileUpdate) (*domain.Session, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, scope, fields)
	}
	// Default behavior: signed out
	return nil, domain.ErrNoActiveSession
}

// CurrentSession returns the stored session, if any.
func (m *MockAuthService) CurrentSession(ctx context.Context, scope string) (*domain.Session, error) {
	if m.CurrentSessionFunc != nil {
		return m.CurrentSessionFunc(ctx, scope)
	}
	// Default behavior: signed out
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
