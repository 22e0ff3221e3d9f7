package mocks

import (
	"context"
	"time"

	"github.com/you/hmsauth/domain"
)

// MockTrialService implements domain.TrialService for testing.
type MockTrialService struct {
	StatusFunc      func(ctx context.Context, scope string) (*domain.TrialStatus, error)
	AcknowledgeFunc func(ctx context.Context, scope string, notice domain.TrialNotice) error
}

// NewMockTrialService creates a new MockTrialService with default behaviors.
func NewMockTrialService() *MockTrialService {
	return &MockTrialService{}
}

// Status returns the trial snapshot of a scope.
func (m *MockTrialService) Status(ctx context.Context, scope string) (*domain.TrialStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, scope)
	}
	// Default behavior: active trial with a day left
	return &domain.TrialStatus{
		State:    domain.TrialActive,
		Deadline: time.Now().Add(24 * time.Hour),
		TimeLeft: 24 * time.Hour,
	}, nil
}

// Acknowledge records a seen notice.
func (m *MockTrialService) Acknowledge(ctx context.Context, scope string, notice domain.TrialNotice) error {
	if m.AcknowledgeFunc != nil {
		return m.AcknowledgeFunc(ctx, scope, notice)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.TrialService = (*MockTrialService)(nil)
