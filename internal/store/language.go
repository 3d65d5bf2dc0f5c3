package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexiconlabs/lingua-api/internal/domain"
)

// LanguageProficiencyStore defines the interface for persisting a user's
// learning-language records. At most one record exists per (user, language)
// pair, enforced by a database unique constraint.
type LanguageProficiencyStore interface {
	// Create saves a new proficiency record.
	// Returns ErrLanguageRecordExists if the (user, language) pair already
	// has a record.
	Create(ctx context.Context, proficiency *domain.LanguageProficiency) error

	// GetByUserAndLanguage retrieves the record for the given pair.
	// Returns ErrLanguageRecordNotFound if no record exists.
	GetByUserAndLanguage(ctx context.Context, userID uuid.UUID, language domain.Language) (*domain.LanguageProficiency, error)

	// UpdateLevel changes the declared level of an existing record.
	// Returns ErrLanguageRecordNotFound if no record exists.
	UpdateLevel(ctx context.Context, id uuid.UUID, level domain.LanguageLevel) error

	// ListByUser returns all of a user's records ordered by creation time.
	// An empty slice is a valid result, not an error.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error)

	// Delete removes a record.
	// Returns ErrLanguageRecordNotFound if no record exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new store instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LanguageProficiencyStore
}
