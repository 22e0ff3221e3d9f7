package notifications

import (
	"github.com/rs/zerolog"

	"github.com/you/hmsauth/domain"
)

// LogNotifier implements domain.Notifier by writing banner events to the
// structured log. The shell polls responses for its banners; the log copy
// is the audit trail.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger zerolog.Logger) domain.Notifier {
	return &LogNotifier{logger: logger}
}

// Publish implements domain.Notifier.
func (n *LogNotifier) Publish(event domain.Event) {
	var evt *zerolog.Event
	switch event.Level {
	case domain.EventError:
		evt = n.logger.Warn()
	default:
		evt = n.logger.Info()
	}
	evt.Str("banner", string(event.Level)).
		Str("title", event.Title).
		Str("message", event.Message).
		Msg("notification")
}
