package notify

import "log"

// Severity of a user-facing notification
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier is the sink for user-facing success/error messages. The SPA
// renders these as toasts; the backend only needs somewhere to put them.
type Notifier interface {
	Notify(userID string, severity Severity, title, message string)
}

// LogNotifier writes notifications to the server log. Stands in until a
// push channel to the SPA exists.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(userID string, severity Severity, title, message string) {
	log.Printf("[notify:%s] user=%s %s: %s", severity, userID, title, message)
}

// NopNotifier discards notifications (used in tests)
type NopNotifier struct{}

func (NopNotifier) Notify(string, Severity, string, string) {}
