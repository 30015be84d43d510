package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keys under which a successful login is persisted.
const (
	AccessTokenKey = "access_token"
	UserIDKey      = "userId"
)

// LoginRequest represents the JSON body sent to the authentication endpoint
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// LoginResult represents a successful response of the authentication endpoint.
type LoginResult struct {
	Token  string `json:"token"`  // Bearer token, stored verbatim
	UserID UserID `json:"userId"` // User identifier, stored verbatim
}

// UserID is a user identifier that may arrive as a JSON string or a JSON number.
// Numbers are kept in their textual form, e.g. 42 becomes "42".
type UserID string

// UnmarshalJSON accepts both string and number encodings.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("userId must be a string or a number: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// ErrorResponse represents an error body returned by the authentication endpoint.
// The message is either nested under "error" or placed at the top level.
type ErrorResponse struct {
	Error   *ErrorDetail `json:"error"`
	Message *string      `json:"message"`
}

// ErrorDetail is the nested error object of an ErrorResponse.
type ErrorDetail struct {
	Message *string `json:"message"`
}

// ErrorMessage returns the message carried by the response, if any.
// A nested error.message takes precedence over a top-level message.
func (r ErrorResponse) ErrorMessage() (string, bool) {
	if r.Error != nil && r.Error.Message != nil {
		return *r.Error.Message, true
	}
	if r.Message != nil {
		return *r.Message, true
	}
	return "", false
}
