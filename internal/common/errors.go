// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Transport errors.
	ErrTransport     = errors.New("request could not be delivered")
	ErrUnauthorized  = errors.New("credential rejected by server")
	ErrNotFound      = errors.New("not found")
	ErrRequestFailed = errors.New("request failed")

	// Client-side errors.
	ErrValidation       = errors.New("validation failed")
	ErrNotAuthenticated = errors.New("not logged in")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Invalid builds a validation error for a single field.
func Invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}

// Describe maps an error to the message the CLI shows the user.
func Describe(err error) string {
	var userErr *UserError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &userErr):
		return userErr.UserMessage
	case errors.Is(err, ErrNotAuthenticated):
		return "You are not logged in. Run 'finance login' first."
	case errors.Is(err, ErrUnauthorized):
		return "The server rejected your credentials. Log out and log in again."
	case errors.Is(err, ErrTransport):
		return "Could not reach the finance service."
	default:
		return err.Error()
	}
}
