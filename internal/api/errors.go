package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		// Deactivation is part of the authentication failure taxonomy;
		// a deactivated login fails the same way a bad token does.
		errors.Is(err, service.ErrUserInactive):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrLastLanguage),
		errors.Is(err, service.ErrActiveLanguage),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownLanguage),
		errors.Is(err, domain.ErrUnknownLanguageLevel),
		errors.Is(err, domain.ErrUnknownRole),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authentication required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "You do not have permission to perform this action"

	case errors.Is(err, service.ErrUserInactive):
		return "Account is deactivated"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrLanguageRecordNotFound):
		return "Language record not found"

	case errors.Is(err, service.ErrEmailTaken):
		return "Email already registered"

	case errors.Is(err, service.ErrUsernameTaken):
		return "Username already taken"

	case errors.Is(err, store.ErrLanguageRecordExists):
		return "Language already added"

	case errors.Is(err, service.ErrLastLanguage):
		return "Cannot remove the last learning language"

	case errors.Is(err, service.ErrActiveLanguage):
		return "Cannot remove the active learning language. Set another language as active first"

	case errors.Is(err, domain.ErrUnknownLanguage):
		return "Unsupported language code"

	case errors.Is(err, domain.ErrUnknownLanguageLevel):
		return "Invalid language level"

	case isDomainValidationError(err):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError reports whether the error comes from domain
// validation rules. Their messages describe the input, not internals, so
// they are safe to return verbatim.
func isDomainValidationError(err error) bool {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return true
	}
	return errors.Is(err, domain.ErrPasswordTooShort) ||
		errors.Is(err, domain.ErrPasswordTooLong) ||
		errors.Is(err, domain.ErrPasswordTooWeak) ||
		errors.Is(err, domain.ErrUsernameTooShort) ||
		errors.Is(err, domain.ErrUsernameTooLong) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrInvalidEmail)
}

// SanitizeValidationError turns a validator error into a user-friendly
// message without echoing the submitted values back.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// validationTagMessage maps validation tags to user-friendly error messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	case "oneof":
		return "value is not one of the allowed options"
	default:
		return "invalid value"
	}
}
