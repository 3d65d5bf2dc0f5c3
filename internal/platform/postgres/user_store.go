// Package postgres implements the store interfaces on top of PostgreSQL,
// accessed through database/sql with the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/platform/logger"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// Uniqueness constraint names from the migrations. The store maps each one
// to its entity-specific duplicate error.
const (
	constraintUsersEmail   = "users_email_unique"
	constraintUsersName    = "users_username_key"
	constraintUserLanguage = "uq_user_language"
)

// uniqueViolation returns the violated constraint name if err is a
// PostgreSQL unique constraint violation, or "" otherwise.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
		return pgErr.ConstraintName
	}
	return ""
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user row, translating uniqueness violations into
// store.ErrEmailExists / store.ErrUsernameExists.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}
	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, email, username, name, native_language,
			hashed_password, role, is_active, active_learning_language_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Username,
		user.Name,
		user.NativeLanguage,
		user.HashedPassword,
		user.Role,
		user.IsActive,
		user.ActiveLearningLanguageID,
		user.CreatedAt,
	)

	if err != nil {
		switch uniqueViolation(err) {
		case constraintUsersEmail:
			log.Debug("duplicate email during user creation",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		case constraintUsersName:
			log.Debug("duplicate username during user creation",
				slog.String("user_id", user.ID.String()),
				slog.String("username", user.Username))
			return store.ErrUsernameExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))
	return nil
}

const userColumns = `id, email, username, name, native_language,
	hashed_password, role, is_active, active_learning_language_id, created_at`

// scanUser scans a single user row into a domain.User.
func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var nativeLanguage, role string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Name,
		&nativeLanguage,
		&user.HashedPassword,
		&role,
		&user.IsActive,
		&user.ActiveLearningLanguageID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.NativeLanguage = domain.Language(nativeLanguage)
	user.Role = domain.Role(role)
	return &user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, err
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// The comparison runs on lower(email) so lookups match the case-insensitive
// uniqueness rule.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	return user, nil
}

// SetActiveLearningLanguage implements store.UserStore.SetActiveLearningLanguage
func (s *PostgresUserStore) SetActiveLearningLanguage(ctx context.Context, userID, proficiencyID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET active_learning_language_id = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, proficiencyID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("active learning language points at missing record",
				slog.String("user_id", userID.String()),
				slog.String("proficiency_id", proficiencyID.String()))
			return store.ErrLanguageRecordNotFound
		}
		log.Error("failed to set active learning language",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrUserNotFound
	}

	log.Debug("active learning language updated",
		slog.String("user_id", userID.String()),
		slog.String("proficiency_id", proficiencyID.String()))
	return nil
}
