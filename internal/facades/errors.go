package facades

import (
	"errors"
	"fmt"
)

// AuthErrorKind classifies a failed login attempt.
type AuthErrorKind int

const (
	// AuthErrorRejected means the server answered with an error message.
	AuthErrorRejected AuthErrorKind = iota
	// AuthErrorMalformed means the server answered without a usable message.
	AuthErrorMalformed
	// AuthErrorTransport means no response was received.
	AuthErrorTransport
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthErrorRejected:
		return "rejected"
	case AuthErrorMalformed:
		return "malformed"
	case AuthErrorTransport:
		return "transport"
	default:
		return fmt.Sprintf("AuthErrorKind(%d)", int(k))
	}
}

// ErrAuthenticationFailed is matched by every *AuthError via errors.Is.
var ErrAuthenticationFailed = errors.New("authentication failed")

// AuthError is returned when a login attempt does not produce a LoginResult.
type AuthError struct {
	Kind       AuthErrorKind
	StatusCode int    // HTTP status, zero for transport failures
	Message    string // Server message, set only for AuthErrorRejected
	Err        error  // Underlying cause, if any
}

func (e *AuthError) Error() string {
	switch e.Kind {
	case AuthErrorRejected:
		return fmt.Sprintf("authentication rejected (status %d): %s", e.StatusCode, e.Message)
	case AuthErrorMalformed:
		if e.Err != nil {
			return fmt.Sprintf("malformed authentication response (status %d): %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("malformed authentication response (status %d)", e.StatusCode)
	default:
		return fmt.Sprintf("authentication request failed: %v", e.Err)
	}
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is reports ErrAuthenticationFailed as a match for every AuthError.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}
