package models

// Login outcomes reported in LoginEvent.
const (
	LoginOutcomeSuccess = "success"
	LoginOutcomeFailure = "failure"
)

// LoginEvent is an audit record of a resolved login attempt.
// It never carries the password or the access token.
type LoginEvent struct {
	EventID   string `json:"event_id"`          // EventID is a unique identifier of the event.
	Timestamp int64  `json:"timestamp"`         // Timestamp is the Unix time (seconds) the attempt resolved.
	Email     string `json:"email"`             // Email is the submitted email.
	Outcome   string `json:"outcome"`           // Outcome is "success" or "failure".
	UserID    string `json:"user_id,omitempty"` // UserID is set on success.
	Reason    string `json:"reason,omitempty"`  // Reason is the displayed error on failure.
}
