package mocks

import (
	"context"

	"github.com/you/hmsauth/domain"
)

// MockChallengeStore implements domain.ChallengeStore for testing.
type MockChallengeStore struct {
	PutFunc     func(ctx context.Context, scope string, challenge *domain.OTPChallenge) error
	GetFunc     func(ctx context.Context, scope string) (*domain.OTPChallenge, error)
	ConsumeFunc func(ctx context.Context, scope string) error
}

// NewMockChallengeStore creates a new MockChallengeStore with default behaviors.
func NewMockChallengeStore() *MockChallengeStore {
	return &MockChallengeStore{}
}

// Put stores a challenge, superseding any previous one.
func (m *MockChallengeStore) Put(ctx context.Context, scope string, challenge *domain.OTPChallenge) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, scope, challenge)
	}
	// Default behavior: success
	return nil
}

// Get reads the live challenge of a scope.
func (m *MockChallengeStore) Get(ctx context.Context, scope string) (*domain.OTPChallenge, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, scope)
	}
	// Default behavior: no challenge
	return nil, nil
}

// Consume removes the live challenge of a scope.
func (m *MockChallengeStore) Consume(ctx context.Context, scope string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, scope)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ChallengeStore = (*MockChallengeStore)(nil)
