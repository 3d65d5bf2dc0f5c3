package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrUsernameTooShort    = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong     = errors.New("username must be at most 50 characters long")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooLong         = errors.New("name must be at most 100 characters long")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 100 characters long")
	ErrPasswordTooWeak     = errors.New("password must contain at least one letter and one digit")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Password length bounds. The upper bound also caps the input accepted by
// the password hasher.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
)

var (
	emailRegex       = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	passwordLetterRe = regexp.MustCompile(`[A-Za-z]`)
	passwordDigitRe  = regexp.MustCompile(`[0-9]`)
)

// User represents a registered learner.
// Email is stored lowercase so uniqueness is case-insensitive.
// ActiveLearningLanguageID, when set, must reference one of this user's own
// LanguageProficiency records; the database enforces the reference, the
// service layer enforces the ownership.
type User struct {
	ID                       uuid.UUID  `json:"id"`
	Email                    string     `json:"email"`
	Username                 string     `json:"username"`
	Name                     string     `json:"name"`
	NativeLanguage           Language   `json:"native_language"`
	Password                 string     `json:"-"` // Plaintext, held only between decode and hashing
	HashedPassword           string     `json:"-"` // Never expose the hash in JSON
	Role                     Role       `json:"role"`
	IsActive                 bool       `json:"is_active"`
	ActiveLearningLanguageID *uuid.UUID `json:"active_learning_language_id,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

// NewUser creates a new User with the given registration data.
// It generates a new UUID, normalizes the email to lowercase, assigns the
// default role, and marks the account active. Returns an error if
// validation fails.
//
// NOTE: the returned user carries the plaintext password. The caller is
// responsible for hashing it before the user is stored.
func NewUser(email, username, name string, nativeLanguage Language, password string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Email:          NormalizeEmail(email),
		Username:       username,
		Name:           name,
		NativeLanguage: nativeLanguage,
		Password:       password,
		Role:           DefaultRole,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// uniqueness checks operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	// Length limits count characters, not bytes, so Cyrillic and other
	// multi-byte input is measured the same as ASCII.
	if utf8.RuneCountInString(u.Username) < 3 {
		return ErrUsernameTooShort
	}
	if utf8.RuneCountInString(u.Username) > 50 {
		return ErrUsernameTooLong
	}

	if u.Name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(u.Name) > 100 {
		return ErrNameTooLong
	}

	if !u.NativeLanguage.Valid() {
		return ErrUnknownLanguage
	}

	if !u.Role.Valid() {
		return ErrUnknownRole
	}

	// During registration the plaintext password is validated; afterwards
	// only the hash is present.
	if u.Password != "" {
		if err := ValidatePassword(u.Password); err != nil {
			return err
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword checks password strength: 8 to 100 characters containing
// at least one letter and one digit.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if utf8.RuneCountInString(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if !passwordLetterRe.MatchString(password) || !passwordDigitRe.MatchString(password) {
		return ErrPasswordTooWeak
	}
	return nil
}
