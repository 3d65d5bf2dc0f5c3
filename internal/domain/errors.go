// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUnknownLanguage is returned when a language code is not part of the
	// supported language set.
	ErrUnknownLanguage = errors.New("unknown language code")

	// ErrUnknownLanguageLevel is returned when a proficiency level is not a
	// valid CEFR level.
	ErrUnknownLanguageLevel = errors.New("unknown language level")

	// ErrUnknownRole is returned when a role is not part of the fixed role set.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError carries field-level context for a failed validation.
// It wraps one of the sentinel errors above so callers can still use
// errors.Is to classify the failure.
type ValidationError struct {
	Field   string // The field that failed validation (e.g., "email")
	Message string // Human-readable description of the failure
	Err     error  // Wrapped sentinel error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
