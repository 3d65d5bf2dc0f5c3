package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"

	"github.com/lexiconlabs/lingua-api/internal/config"
	"github.com/lexiconlabs/lingua-api/internal/domain"
)

// PasswordHasher defines the interface for one-way credential hashing and
// verification.
type PasswordHasher interface {
	// Hash derives a salted hash from the plaintext password. The cost
	// parameters used are embedded in the returned value, so verification
	// never needs external knowledge of them.
	Hash(password string) (string, error)

	// Verify recomputes the hash using the parameters embedded in
	// encodedHash and compares in constant time. A mismatch returns
	// (false, nil); only a malformed encodedHash produces an error.
	Verify(password, encodedHash string) (bool, error)
}

const (
	argon2SaltLength = 16
	argon2KeyLength  = 32
)

// Argon2Hasher implements PasswordHasher using Argon2id. Hashing is
// deliberately expensive; it must run before any database transaction is
// opened, never inside one.
type Argon2Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// NewArgon2Hasher creates a hasher with the cost parameters from the given
// configuration.
func NewArgon2Hasher(cfg config.AuthConfig) *Argon2Hasher {
	return &Argon2Hasher{
		memory:      cfg.Argon2Memory,
		iterations:  cfg.Argon2Iterations,
		parallelism: cfg.Argon2Parallelism,
	}
}

// Ensure Argon2Hasher implements PasswordHasher interface
var _ PasswordHasher = (*Argon2Hasher)(nil)

// Hash implements PasswordHasher.Hash.
// The output uses the PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>
func (h *Argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	// Character count, matching the user-facing validation rule.
	if utf8.RuneCountInString(password) > domain.MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memory, h.parallelism, argon2KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify implements PasswordHasher.Verify.
// The cost parameters are read from encodedHash, not from the hasher's own
// configuration, so hashes created under older settings keep verifying.
func (h *Argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	if password == "" {
		return false, nil
	}

	memory, iterations, parallelism, salt, key, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

// decodeArgon2Hash parses a PHC-format argon2id hash into its parameters,
// salt, and derived key.
func decodeArgon2Hash(encodedHash string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return 0, 0, 0, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}
	if memory == 0 || iterations == 0 || parallelism == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return 0, 0, 0, nil, nil, ErrMalformedHash
	}

	return memory, iterations, parallelism, salt, key, nil
}
