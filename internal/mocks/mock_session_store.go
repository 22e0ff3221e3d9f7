package mocks

import (
	"context"

	"github.com/you/hmsauth/domain"
)

// MockSessionStore implements domain.SessionStore for testing.
type MockSessionStore struct {
	LoadFunc  func(ctx context.Context, scope string) (*domain.Session, error)
	SaveFunc  func(ctx context.Context, scope string, session *domain.Session) error
	ClearFunc func(ctx context.Context, scope string) error
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Load reads the session snapshot of a scope.
func (m *MockSessionStore) Load(ctx context.Context, scope string) (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, scope)
	}
	// Default behavior: no session
	return nil, nil
}

// Save writes the session snapshot of a scope.
func (m *MockSessionStore) Save(ctx context.Context, scope string, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, scope, session)
	}
	// Default behavior: success
	return nil
}

// Clear removes the session snapshot of a scope.
func (m *MockSessionStore) Clear(ctx context.Context, scope string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, scope)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
