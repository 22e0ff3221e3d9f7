package mocks

import (
	"github.com/you/hmsauth/domain"
)

// MockCredentialVerifier implements domain.CredentialVerifier for testing.
type MockCredentialVerifier struct {
	HashFunc   func(secret string) (string, error)
	VerifyFunc func(stored, presented string) bool
}

// NewMockCredentialVerifier creates a new MockCredentialVerifier with default behaviors.
func NewMockCredentialVerifier() *MockCredentialVerifier {
	return &MockCredentialVerifier{}
}

// Hash stores a credential.
func (m *MockCredentialVerifier) Hash(secret string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(secret)
	}
	// Default behavior: plaintext passthrough
	return secret, nil
}

// Verify compares a stored and a presented credential.
func (m *MockCredentialVerifier) Verify(stored, presented string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(stored, presented)
	}
	// Default behavior: plaintext equality
	return stored == presented
}

// Compile-time interface compliance verification
var _ domain.CredentialVerifier = (*MockCredentialVerifier)(nil)
