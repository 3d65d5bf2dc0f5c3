package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/platform/logger"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// PostgresLanguageStore implements the store.LanguageProficiencyStore
// interface using a PostgreSQL database as the storage backend.
type PostgresLanguageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLanguageStore creates a new PostgreSQL implementation of the
// LanguageProficiencyStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresLanguageStore(db store.DBTX, logger *slog.Logger) *PostgresLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLanguageStore{
		db:     db,
		logger: logger.With(slog.String("component", "language_store")),
	}
}

// Ensure PostgresLanguageStore implements store.LanguageProficiencyStore interface
var _ store.LanguageProficiencyStore = (*PostgresLanguageStore)(nil)

// WithTx implements store.LanguageProficiencyStore.WithTx
func (s *PostgresLanguageStore) WithTx(tx *sql.Tx) store.LanguageProficiencyStore {
	return &PostgresLanguageStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.LanguageProficiencyStore.Create
// It translates a (user, language) uniqueness violation into
// store.ErrLanguageRecordExists and a missing user into store.ErrInvalidEntity.
func (s *PostgresLanguageStore) Create(ctx context.Context, proficiency *domain.LanguageProficiency) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := proficiency.Validate(); err != nil {
		log.Warn("language proficiency validation failed during create",
			slog.String("error", err.Error()),
			slog.String("proficiency_id", proficiency.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_level_languages (id, user_id, language, level, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		proficiency.ID,
		proficiency.UserID,
		proficiency.Language,
		proficiency.Level,
		proficiency.CreatedAt,
	)

	if err != nil {
		if uniqueViolation(err) == constraintUserLanguage {
			log.Debug("duplicate language record",
				slog.String("user_id", proficiency.UserID.String()),
				slog.String("language", proficiency.Language.String()))
			return store.ErrLanguageRecordExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during language record creation",
				slog.String("user_id", proficiency.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, proficiency.UserID)
		}

		log.Error("failed to create language record",
			slog.String("error", err.Error()),
			slog.String("user_id", proficiency.UserID.String()),
			slog.String("language", proficiency.Language.String()))
		return err
	}

	log.Info("language record created",
		slog.String("proficiency_id", proficiency.ID.String()),
		slog.String("user_id", proficiency.UserID.String()),
		slog.String("language", proficiency.Language.String()),
		slog.String("level", proficiency.Level.String()))
	return nil
}

// GetByUserAndLanguage implements store.LanguageProficiencyStore.GetByUserAndLanguage
func (s *PostgresLanguageStore) GetByUserAndLanguage(
	ctx context.Context,
	userID uuid.UUID,
	language domain.Language,
) (*domain.LanguageProficiency, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, language, level, created_at
		FROM user_level_languages
		WHERE user_id = $1 AND language = $2
	`

	var p domain.LanguageProficiency
	var lang, level string

	err := s.db.QueryRowContext(ctx, query, userID, language).Scan(
		&p.ID,
		&p.UserID,
		&lang,
		&level,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLanguageRecordNotFound
		}
		log.Error("failed to get language record",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("language", language.String()))
		return nil, err
	}

	p.Language = domain.Language(lang)
	p.Level = domain.LanguageLevel(level)
	return &p, nil
}

// UpdateLevel implements store.LanguageProficiencyStore.UpdateLevel
func (s *PostgresLanguageStore) UpdateLevel(ctx context.Context, id uuid.UUID, level domain.LanguageLevel) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !level.Valid() {
		return domain.ErrUnknownLanguageLevel
	}

	query := `
		UPDATE user_level_languages
		SET level = $1
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, level, id)
	if err != nil {
		log.Error("failed to update language record level",
			slog.String("error", err.Error()),
			slog.String("proficiency_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("proficiency_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrLanguageRecordNotFound
	}

	log.Debug("language record level updated",
		slog.String("proficiency_id", id.String()),
		slog.String("level", level.String()))
	return nil
}

// Delete implements store.LanguageProficiencyStore.Delete
func (s *PostgresLanguageStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM user_level_languages
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete language record",
			slog.String("error", err.Error()),
			slog.String("proficiency_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("proficiency_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		return store.ErrLanguageRecordNotFound
	}

	log.Info("language record deleted",
		slog.String("proficiency_id", id.String()))
	return nil
}

// ListByUser implements store.LanguageProficiencyStore.ListByUser
func (s *PostgresLanguageStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, language, level, created_at
		FROM user_level_languages
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list language records",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	records := make([]*domain.LanguageProficiency, 0)
	for rows.Next() {
		var p domain.LanguageProficiency
		var lang, level string

		if err := rows.Scan(&p.ID, &p.UserID, &lang, &level, &p.CreatedAt); err != nil {
			log.Error("failed to scan language record",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return nil, err
		}

		p.Language = domain.Language(lang)
		p.Level = domain.LanguageLevel(level)
		records = append(records, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
