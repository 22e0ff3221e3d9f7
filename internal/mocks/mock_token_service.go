package mocks

import (
	"github.com/you/hmsauth/domain"
)

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	MintFunc     func(userID string, role domain.Role, sessionID string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Mint produces a session token.
func (m *MockTokenService) Mint(userID string, role domain.Role, sessionID string) (string, error) {
	if m.MintFunc != nil {
		return m.MintFunc(userID, role, sessionID)
	}
	// Default behavior: deterministic placeholder
	return "token_" + userID, nil
}

// Validate parses a session token.
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
