package mocks

import (
	"github.com/you/hmsauth/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	// SentMessages records every SMS passed through the default behavior.
	SentMessages []SentSMS
}

// SentSMS is one recorded SMS.
type SentSMS struct {
	To      string
	Message string
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors.
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS delivers a message.
func (m *MockNotificationService) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: record and succeed
	m.SentMessages = append(m.SentMessages, SentSMS{To: to, Message: message})
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
