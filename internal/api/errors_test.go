package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "invalid credentials", err: auth.ErrInvalidCredentials, expected: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, expected: http.StatusUnauthorized},
		{name: "missing token", err: auth.ErrMissingToken, expected: http.StatusUnauthorized},
		{name: "forbidden", err: domain.ErrUnauthorized, expected: http.StatusForbidden},
		{name: "inactive account", err: service.ErrUserInactive, expected: http.StatusUnauthorized},
		{name: "user not found", err: store.ErrUserNotFound, expected: http.StatusNotFound},
		{name: "language record not found", err: store.ErrLanguageRecordNotFound, expected: http.StatusNotFound},
		{name: "email taken", err: service.ErrEmailTaken, expected: http.StatusConflict},
		{name: "username taken", err: service.ErrUsernameTaken, expected: http.StatusConflict},
		{name: "duplicate record", err: store.ErrLanguageRecordExists, expected: http.StatusConflict},
		{name: "unknown language", err: domain.ErrUnknownLanguage, expected: http.StatusBadRequest},
		{name: "unknown level", err: domain.ErrUnknownLanguageLevel, expected: http.StatusBadRequest},
		{name: "last language", err: service.ErrLastLanguage, expected: http.StatusBadRequest},
		{name: "active language", err: service.ErrActiveLanguage, expected: http.StatusBadRequest},
		{name: "weak password", err: domain.ErrPasswordTooWeak, expected: http.StatusBadRequest},
		{name: "unknown error", err: errors.New("boom"), expected: http.StatusInternalServerError},
		{
			name:     "wrapped sentinel keeps its mapping",
			err:      service.NewServiceError("create user", store.ErrUserNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "deeply wrapped duplicate",
			err:      fmt.Errorf("registering: %w", service.ErrEmailTaken),
			expected: http.StatusConflict,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known sentinels get friendly text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Invalid email or password", GetSafeErrorMessage(auth.ErrInvalidCredentials))
		assert.Equal(t, "Email already registered", GetSafeErrorMessage(service.ErrEmailTaken))
		assert.Equal(t, "User not found", GetSafeErrorMessage(store.ErrUserNotFound))
	})

	t.Run("validation messages pass through", func(t *testing.T) {
		t.Parallel()
		msg := GetSafeErrorMessage(domain.ErrPasswordTooWeak)
		assert.Contains(t, msg, "letter")
	})

	t.Run("unknown errors are generic", func(t *testing.T) {
		t.Parallel()
		internal := errors.New("pq: connection refused host=10.0.0.3")
		msg := GetSafeErrorMessage(internal)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "10.0.0.3")
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	msg := SanitizeValidationError(err)
	assert.Equal(t, "Invalid Email: required field", msg)

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("some other failure")))
}
