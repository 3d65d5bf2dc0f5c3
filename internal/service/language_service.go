package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/platform/logger"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// UpsertLanguageParams carries the input for adding or updating a
// learning language on an account.
type UpsertLanguageParams struct {
	UserID     uuid.UUID
	Language   domain.Language
	Level      domain.LanguageLevel
	MakeActive bool
}

// UpsertLanguageResult reports what the upsert did.
type UpsertLanguageResult struct {
	Record *domain.LanguageProficiency

	// Created is true when a new record was inserted rather than an
	// existing one updated.
	Created bool

	// Activated is true when the record became the user's active
	// learning language as part of this call.
	Activated bool
}

// LanguageService manages a user's learning-language records.
type LanguageService struct {
	db        *sql.DB
	userStore store.UserStore
	langStore store.LanguageProficiencyStore
	logger    *slog.Logger

	// runTx executes a function within a transaction. Injectable for testing.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewLanguageService creates a new LanguageService.
func NewLanguageService(
	db *sql.DB,
	userStore store.UserStore,
	langStore store.LanguageProficiencyStore,
	log *slog.Logger,
) *LanguageService {
	return &LanguageService{
		db:        db,
		userStore: userStore,
		langStore: langStore,
		logger:    log.With(slog.String("component", "language_service")),
		runTx:     store.RunInTransaction,
	}
}

// Upsert adds a learning language to the user's account, or updates the
// declared level if a record for that language already exists. The record
// becomes the active learning language when MakeActive is set or when the
// user has no active language yet.
func (s *LanguageService) Upsert(ctx context.Context, params UpsertLanguageParams) (*UpsertLanguageResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !params.Language.Valid() {
		return nil, domain.ErrUnknownLanguage
	}
	if params.Level != "" && !params.Level.Valid() {
		return nil, domain.ErrUnknownLanguageLevel
	}

	user, err := s.userStore.GetByID(ctx, params.UserID)
	if err != nil {
		return nil, NewServiceError("look up user for language upsert", err)
	}

	result := &UpsertLanguageResult{}
	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUserStore := s.userStore.WithTx(tx)
		txLangStore := s.langStore.WithTx(tx)

		record, err := s.upsertRecord(ctx, txLangStore, params)
		if err != nil {
			return err
		}
		result.Record = record.proficiency
		result.Created = record.created

		if params.MakeActive || user.ActiveLearningLanguageID == nil {
			if err := txUserStore.SetActiveLearningLanguage(ctx, params.UserID, record.proficiency.ID); err != nil {
				return NewServiceError("activate learning language", err)
			}
			result.Activated = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("upserted learning language",
		slog.String("user_id", params.UserID.String()),
		slog.String("language", params.Language.String()),
		slog.String("level", result.Record.Level.String()),
		slog.Bool("created", result.Created),
		slog.Bool("activated", result.Activated))

	return result, nil
}

type upsertedRecord struct {
	proficiency *domain.LanguageProficiency
	created     bool
}

// upsertRecord inserts or updates the record for (user, language). A race
// where another request inserts the same pair between our lookup and
// insert surfaces as a uniqueness violation; it is retried as an update.
func (s *LanguageService) upsertRecord(ctx context.Context, langStore store.LanguageProficiencyStore, params UpsertLanguageParams) (*upsertedRecord, error) {
	existing, err := langStore.GetByUserAndLanguage(ctx, params.UserID, params.Language)
	if err == nil {
		return s.updateLevel(ctx, langStore, existing, params.Level)
	}
	if !errors.Is(err, store.ErrLanguageRecordNotFound) {
		return nil, NewServiceError("look up learning language", err)
	}

	proficiency, err := domain.NewLanguageProficiency(params.UserID, params.Language, params.Level)
	if err != nil {
		return nil, err
	}

	switch err := langStore.Create(ctx, proficiency); {
	case err == nil:
		return &upsertedRecord{proficiency: proficiency, created: true}, nil
	case errors.Is(err, store.ErrLanguageRecordExists):
		existing, getErr := langStore.GetByUserAndLanguage(ctx, params.UserID, params.Language)
		if getErr != nil {
			return nil, NewServiceError("reload learning language after insert race", getErr)
		}
		return s.updateLevel(ctx, langStore, existing, params.Level)
	default:
		return nil, NewServiceError("create learning language", err)
	}
}

func (s *LanguageService) updateLevel(ctx context.Context, langStore store.LanguageProficiencyStore, existing *domain.LanguageProficiency, level domain.LanguageLevel) (*upsertedRecord, error) {
	if level == "" {
		level = domain.DefaultLanguageLevel
	}
	if existing.Level != level {
		if err := langStore.UpdateLevel(ctx, existing.ID, level); err != nil {
			return nil, NewServiceError("update learning language level", err)
		}
		existing.Level = level
	}
	return &upsertedRecord{proficiency: existing, created: false}, nil
}

// ListByUser returns the user's learning-language records in creation order.
func (s *LanguageService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error) {
	records, err := s.langStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list learning languages", err)
	}
	return records, nil
}

// Delete removes a language from the user's learning list. The language
// must exist on the account, must not be the last one, and must not be the
// active one.
func (s *LanguageService) Delete(ctx context.Context, user *domain.User, language domain.Language) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !language.Valid() {
		return domain.ErrUnknownLanguage
	}

	records, err := s.langStore.ListByUser(ctx, user.ID)
	if err != nil {
		return NewServiceError("list learning languages for delete", err)
	}

	var target *domain.LanguageProficiency
	for _, record := range records {
		if record.Language == language {
			target = record
			break
		}
	}
	if target == nil {
		return store.ErrLanguageRecordNotFound
	}
	if len(records) == 1 {
		return ErrLastLanguage
	}
	if user.ActiveLearningLanguageID != nil && *user.ActiveLearningLanguageID == target.ID {
		return ErrActiveLanguage
	}

	if err := s.langStore.Delete(ctx, target.ID); err != nil {
		return NewServiceError("delete learning language", err)
	}

	log.Info("removed learning language",
		slog.String("user_id", user.ID.String()),
		slog.String("language", language.String()))
	return nil
}

// GetActive resolves the user's active learning-language record, if any.
// Returns (nil, nil) when no language has been activated.
func (s *LanguageService) GetActive(ctx context.Context, user *domain.User) (*domain.LanguageProficiency, error) {
	if user.ActiveLearningLanguageID == nil {
		return nil, nil
	}
	records, err := s.langStore.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, NewServiceError("resolve active learning language", err)
	}
	for _, record := range records {
		if record.ID == *user.ActiveLearningLanguageID {
			return record, nil
		}
	}
	return nil, nil
}
