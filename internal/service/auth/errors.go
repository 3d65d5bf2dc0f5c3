package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials indicates a failed login. Unknown email and wrong
	// password deliberately produce this same error so callers cannot probe
	// which addresses are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Credential hashing errors

	// ErrEmptyPassword indicates an empty string was passed to the hasher.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong indicates the password exceeds the maximum accepted length.
	ErrPasswordTooLong = errors.New("password exceeds maximum length")

	// ErrMalformedHash indicates a stored hash could not be parsed. Plain
	// mismatches never produce an error, only a false result.
	ErrMalformedHash = errors.New("malformed password hash")
)
