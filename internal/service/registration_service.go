package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/platform/logger"
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// RegisterParams carries the input for a basic registration.
type RegisterParams struct {
	Email          string
	Username       string
	Name           string
	NativeLanguage domain.Language
	Password       string
}

// RegisterWithLanguageParams extends RegisterParams with the learning
// language created alongside the account.
type RegisterWithLanguageParams struct {
	RegisterParams
	LearningLanguage domain.Language
	Level            domain.LanguageLevel
}

// RegistrationService handles account creation and credential-based login.
type RegistrationService struct {
	db         *sql.DB
	userStore  store.UserStore
	langStore  store.LanguageProficiencyStore
	hasher     auth.PasswordHasher
	jwtService auth.JWTService
	logger     *slog.Logger

	// runTx executes a function within a transaction. Injectable for testing.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error

	// dummyHash is verified against when login hits an unknown email, so
	// the request costs the same as a real password check. Without it an
	// attacker could distinguish registered emails by response time.
	dummyHash string
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	db *sql.DB,
	userStore store.UserStore,
	langStore store.LanguageProficiencyStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	log *slog.Logger,
) (*RegistrationService, error) {
	dummyHash, err := hasher.Hash("timing-equalization-placeholder-1")
	if err != nil {
		return nil, fmt.Errorf("failed to precompute dummy hash: %w", err)
	}

	return &RegistrationService{
		db:         db,
		userStore:  userStore,
		langStore:  langStore,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     log.With(slog.String("component", "registration_service")),
		runTx:      store.RunInTransaction,
		dummyHash:  dummyHash,
	}, nil
}

// Register creates a new account with no learning language. The returned
// user carries the stored hash, never the plaintext password.
func (s *RegistrationService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.buildUser(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, mapCreateUserError(err)
	}

	log.Info("registered new user",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return user, nil
}

// RegisterWithLanguage creates an account together with its first learning
// language in a single transaction. The new record becomes the user's
// active learning language. If any step fails, nothing is persisted.
func (s *RegistrationService) RegisterWithLanguage(ctx context.Context, params RegisterWithLanguageParams) (*domain.User, *domain.LanguageProficiency, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.buildUser(ctx, params.RegisterParams)
	if err != nil {
		return nil, nil, err
	}

	proficiency, err := domain.NewLanguageProficiency(user.ID, params.LearningLanguage, params.Level)
	if err != nil {
		return nil, nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUserStore := s.userStore.WithTx(tx)
		txLangStore := s.langStore.WithTx(tx)

		if err := txUserStore.Create(ctx, user); err != nil {
			return mapCreateUserError(err)
		}
		if err := txLangStore.Create(ctx, proficiency); err != nil {
			return NewServiceError("create initial learning language", err)
		}
		if err := txUserStore.SetActiveLearningLanguage(ctx, user.ID, proficiency.ID); err != nil {
			return NewServiceError("activate initial learning language", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	user.ActiveLearningLanguageID = &proficiency.ID

	log.Info("registered new user with learning language",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
		slog.String("language", params.LearningLanguage.String()))

	return user, proficiency, nil
}

// Login verifies the credentials for the given email and, on success,
// issues a signed access token. Unknown emails and wrong passwords both
// return auth.ErrInvalidCredentials so the response does not reveal which
// accounts exist.
func (s *RegistrationService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn the same hashing cost as a real check before failing.
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", NewServiceError("look up user for login", err)
	}

	ok, err := s.hasher.Verify(password, user.HashedPassword)
	if err != nil {
		log.Error("stored password hash could not be verified",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return nil, "", auth.ErrInvalidCredentials
	}
	if !ok {
		return nil, "", auth.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrUserInactive
	}

	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", NewServiceError("issue access token", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	return user, token, nil
}

// buildUser validates the registration input, hashes the password, and
// returns a user ready for persistence.
func (s *RegistrationService) buildUser(ctx context.Context, params RegisterParams) (*domain.User, error) {
	user, err := domain.NewUser(params.Email, params.Username, params.Name, params.NativeLanguage, params.Password)
	if err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Advisory pre-checks give friendly errors for the common case; the
	// database constraints remain the source of truth under concurrency.
	if _, err := s.userStore.GetByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, NewServiceError("check email availability", err)
	}
	if _, err := s.userStore.GetByUsername(ctx, user.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, NewServiceError("check username availability", err)
	}

	hashed, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, NewServiceError("hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	return user, nil
}

// mapCreateUserError translates store-level uniqueness violations into the
// service sentinels the API maps to conflict responses.
func mapCreateUserError(err error) error {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return ErrEmailTaken
	case errors.Is(err, store.ErrUsernameExists):
		return ErrUsernameTaken
	default:
		return NewServiceError("create user", err)
	}
}
