package domain

import (
	"time"

	"github.com/google/uuid"
)

// LanguageProficiency records a user's declared level in a language they
// are learning. At most one record exists per (user, language) pair; the
// database unique constraint is the final arbiter under concurrent writers.
type LanguageProficiency struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Language  Language      `json:"language"`
	Level     LanguageLevel `json:"level"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewLanguageProficiency creates a proficiency record for the given user
// and language. An empty level defaults to A1. Returns an error if
// validation fails.
func NewLanguageProficiency(userID uuid.UUID, language Language, level LanguageLevel) (*LanguageProficiency, error) {
	if level == "" {
		level = DefaultLanguageLevel
	}

	p := &LanguageProficiency{
		ID:        uuid.New(),
		UserID:    userID,
		Language:  language,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the LanguageProficiency has valid data.
func (p *LanguageProficiency) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if p.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if !p.Language.Valid() {
		return ErrUnknownLanguage
	}
	if !p.Level.Valid() {
		return ErrUnknownLanguageLevel
	}
	return nil
}
