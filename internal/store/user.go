package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lexiconlabs/lingua-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
//
// Uniqueness of email (case-insensitive) and username is enforced by the
// storage engine; the Create implementation translates constraint
// violations into ErrEmailExists / ErrUsernameExists so concurrent
// registrations that race past advisory pre-checks still fail cleanly.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext never reaches the store layer.
	// Returns ErrEmailExists or ErrUsernameExists on a uniqueness violation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address. The lookup is
	// case-insensitive: the email is normalized before comparison.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// SetActiveLearningLanguage points the user's active-learning-language
	// reference at the given proficiency record.
	// Returns ErrUserNotFound if the user does not exist.
	SetActiveLearningLanguage(ctx context.Context, userID, proficiencyID uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
