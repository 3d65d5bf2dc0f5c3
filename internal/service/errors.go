// Package service contains the application services that coordinate
// domain objects, stores, and auth primitives into the operations the
// API exposes.
package service

import (
	"errors"
	"fmt"
)

// Common service-level sentinel errors.
var (
	// ErrEmailTaken indicates registration failed because the email is in use.
	ErrEmailTaken = errors.New("email address is already registered")

	// ErrUsernameTaken indicates registration failed because the username is in use.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrUserInactive indicates the account exists but has been deactivated.
	ErrUserInactive = errors.New("user account is deactivated")

	// ErrLastLanguage indicates a delete would leave the user with no
	// learning languages.
	ErrLastLanguage = errors.New("cannot remove the last learning language")

	// ErrActiveLanguage indicates a delete targeted the active learning
	// language; another language must be activated first.
	ErrActiveLanguage = errors.New("cannot remove the active learning language")
)

// ServiceError wraps an underlying error with the service operation that
// produced it, keeping the cause available for errors.Is/As checks.
type ServiceError struct {
	// Operation is the service method that failed, e.g. "register user".
	Operation string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	}
	return e.Operation
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError for the given operation and cause.
func NewServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Err: err}
}
