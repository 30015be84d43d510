package models

// Credential is the email/password pair entered by the user.
// It lives only for the duration of a login attempt and is never persisted.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginErrorResponse represents an error response of the login console API
// swagger:model LoginErrorResponse
type LoginErrorResponse struct {
	// Error message
	// example: Invalid password
	Error string `json:"error"`
}

// LoginStateResponse represents the current state of the login view
// swagger:model LoginStateResponse
type LoginStateResponse struct {
	// Displayed error, empty when none
	// example: Invalid password
	Error string `json:"error"`
}

// LoginSuccessResponse represents a successful login through the console API
// swagger:model LoginSuccessResponse
type LoginSuccessResponse struct {
	// Identifier of the logged in user
	// example: 42
	UserID string `json:"userId"`
}
