package mocks

import (
	"github.com/you/hmsauth/domain"
)

// MockCodeSource implements domain.CodeSource for testing.
type MockCodeSource struct {
	GenerateFunc func() (string, error)
}

// NewMockCodeSource creates a new MockCodeSource with default behaviors.
func NewMockCodeSource() *MockCodeSource {
	return &MockCodeSource{}
}

// Generate produces a one-time code.
func (m *MockCodeSource) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	// Default behavior: the demo code
	return "123456", nil
}

// Compile-time interface compliance verification
var _ domain.CodeSource = (*MockCodeSource)(nil)
