package mocks

import (
	"context"

	"github.com/you/hmsauth/domain"
)

// MockUserDirectory implements domain.UserDirectory for testing.
type MockUserDirectory struct {
	FindByCredentialFunc func(ctx context.Context, identifier, password string) (*domain.UserRecord, error)
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.UserRecord, error)
	FindByEmailFunc      func(ctx context.Context, email string) (*domain.UserRecord, error)
	FindByIDFunc         func(ctx context.Context, id string) (*domain.UserRecord, error)
	CreateFunc           func(ctx context.Context, user *domain.UserRecord) error
	UpdateFunc           func(ctx context.Context, user *domain.UserRecord) error
}

// NewMockUserDirectory creates a new MockUserDirectory with default behaviors.
func NewMockUserDirectory() *MockUserDirectory {
	return &MockUserDirectory{}
}

// FindByCredential looks up a user by identifier and password.
func (m *MockUserDirectory) FindByCredential(ctx context.Context, identifier, password string) (*domain.UserRecord, error) {
	if m.FindByCredentialFunc != nil {
		return m.FindByCredentialFunc(ctx, identifier, password)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByPhone looks up a user by phone.
func (m *MockUserDirectory) FindByPhone(ctx context.Context, phone string) (*domain.UserRecord, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByEmail looks up a user by email.
func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByID looks up a user by id.
func (m *MockUserDirectory) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, nil
}

// Create adds a new directory entry.
func (m *MockUserDirectory) Create(ctx context.Context, user *domain.UserRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// Update saves an existing directory entry.
func (m *MockUserDirectory) Update(ctx context.Context, user *domain.UserRecord) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserDirectory = (*MockUserDirectory)(nil)
