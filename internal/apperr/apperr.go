package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for any failed login attempt. The
	// message is identical whether the email is unknown or the password is
	// wrong, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailInUse indicates signup with an already-registered email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrForbidden indicates an authenticated actor without sufficient
	// privilege for the requested mutation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID indicates a malformed resource identifier.
	ErrInvalidID = errors.New("invalid id")
)

// ValidationError reports caller input that is missing or malformed.
type ValidationError struct {
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Missing, ", "))
	}
	return e.Message
}

// MissingFields builds a ValidationError naming the absent request fields.
func MissingFields(names []string) *ValidationError {
	return &ValidationError{Message: "missing required fields", Missing: names}
}

// Validation builds a ValidationError with a plain message.
func Validation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// UpstreamError carries a structured failure reported by a third-party
// service; its status code is surfaced to the client unchanged.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}
