package mocks

import (
	"github.com/you/hmsauth/domain"
)

// MockNotifier implements domain.Notifier for testing.
type MockNotifier struct {
	PublishFunc func(event domain.Event)

	// Events records every event passed through the default behavior.
	Events []domain.Event
}

// NewMockNotifier creates a new MockNotifier with default behaviors.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Publish emits a banner event.
func (m *MockNotifier) Publish(event domain.Event) {
	if m.PublishFunc != nil {
		m.PublishFunc(event)
		return
	}
	// Default behavior: record
	m.Events = append(m.Events, event)
}

// Compile-time interface compliance verification
var _ domain.Notifier = (*MockNotifier)(nil)
