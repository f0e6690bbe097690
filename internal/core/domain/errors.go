package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// ValidationError reports a record that failed construction rules. Message is
// safe to return to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ThrottleError is returned by login when a client exceeded its attempt
// budget. It matches ErrTooManyAttempts with errors.Is.
type ThrottleError struct {
	RetryAfter time.Duration
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("%s, retry after %s", ErrTooManyAttempts, e.RetryAfter.Round(time.Second))
}

func (e *ThrottleError) Is(target error) bool {
	return target == ErrTooManyAttempts
}
