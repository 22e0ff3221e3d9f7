package mocks

import (
	"context"

	"github.com/you/hmsauth/domain"
)

// MockFlagStore implements domain.FlagStore for testing.
type MockFlagStore struct {
	SetFunc   func(ctx context.Context, scope, name string) error
	IsSetFunc func(ctx context.Context, scope, name string) (bool, error)

	flags map[string]bool
}

// NewMockFlagStore creates a new MockFlagStore with default behaviors.
func NewMockFlagStore() *MockFlagStore {
	return &MockFlagStore{flags: make(map[string]bool)}
}

// Set raises a flag.
func (m *MockFlagStore) Set(ctx context.Context, scope, name string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, scope, name)
	}
	// Default behavior: in-memory map
	m.flags[scope+"/"+name] = true
	return nil
}

// IsSet reports whether a flag was raised.
func (m *MockFlagStore) IsSet(ctx context.Context, scope, name string) (bool, error) {
	if m.IsSetFunc != nil {
		return m.IsSetFunc(ctx, scope, name)
	}
	// Default behavior: in-memory map
	return m.flags[scope+"/"+name], nil
}

// Compile-time interface compliance verification
var _ domain.FlagStore = (*MockFlagStore)(nil)
