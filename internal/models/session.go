package models

import "time"

// Session is the login state currently held by the persistent store.
type Session struct {
	AccessToken string // Stored access token, never serialized
	UserID      string
}

// SessionResponse describes the stored session
// swagger:model SessionResponse
type SessionResponse struct {
	// Identifier of the logged in user
	// example: 42
	UserID string `json:"userId"`

	// Token subject, when the token is a JWT
	// example: john_doe
	Subject string `json:"subject,omitempty"`

	// Token expiry, when the token is a JWT with an exp claim
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
