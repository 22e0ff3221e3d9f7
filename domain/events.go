package domain

import "time"

// EventLevel mirrors the banner severities of the portal shell.
type EventLevel string

const (
	EventSuccess EventLevel = "success"
	EventError   EventLevel = "error"
	EventInfo    EventLevel = "info"
)

// Event is a user-facing notification emitted by auth operations. The
// caller that invoked the operation translates it into a visible banner.
type Event struct {
	Level     EventLevel `json:"level"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(level EventLevel, title, message string) Event {
	return Event{
		Level:     level,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// TrialNotice names the acknowledgeable trial overlays.
type TrialNotice string

const (
	TrialNoticeSeen   TrialNotice = "notice-seen"
	TrialWarningShown TrialNotice = "warning-shown"
)

// Valid reports whether n names a known trial notice.
func (n TrialNotice) Valid() bool {
	return n == TrialNoticeSeen || n == TrialWarningShown
}
