package mocks

import (
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing without
// paying the cost of real key derivation.
type MockPasswordHasher struct {
	// HashFn allows test cases to mock the Hash behavior
	HashFn func(password string) (string, error)

	// VerifyFn allows test cases to mock the Verify behavior
	VerifyFn func(password, hash string) (bool, error)

	// HashErr is returned by the default Hash implementation when set.
	HashErr error

	// VerifyCalls tracks how many times Verify was called.
	VerifyCalls int
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher. The default produces a reversible
// marker so tests can assert which password a hash came from.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Verify implements auth.PasswordHasher.
func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	m.VerifyCalls++
	if m.VerifyFn != nil {
		return m.VerifyFn(password, hash)
	}
	return hash == "hashed:"+password, nil
}
