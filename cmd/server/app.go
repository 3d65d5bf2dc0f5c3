package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lexiconlabs/lingua-api/internal/api/middleware"
	"github.com/lexiconlabs/lingua-api/internal/config"
	"github.com/lexiconlabs/lingua-api/internal/platform/postgres"
	"github.com/lexiconlabs/lingua-api/internal/service"
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
	"github.com/lexiconlabs/lingua-api/internal/store"
)

// application holds the assembled dependencies of the running server.
// Everything is wired once in newApplication and shared read-only after
// that, so handlers never construct their own collaborators.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	langStore store.LanguageProficiencyStore

	passwordHasher auth.PasswordHasher
	jwtService     auth.JWTService

	registrationService *service.RegistrationService
	languageService     *service.LanguageService

	authMiddleware *middleware.AuthMiddleware
}

// newApplication wires stores, credential services, and domain services
// on top of an established database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	langStore := postgres.NewPostgresLanguageStore(db, logger)

	passwordHasher := auth.NewArgon2Hasher(cfg.Auth)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	registrationService, err := service.NewRegistrationService(
		db,
		userStore,
		langStore,
		passwordHasher,
		jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create registration service: %w", err)
	}

	languageService := service.NewLanguageService(db, userStore, langStore, logger)

	return &application{
		config:              cfg,
		logger:              logger,
		db:                  db,
		userStore:           userStore,
		langStore:           langStore,
		passwordHasher:      passwordHasher,
		jwtService:          jwtService,
		registrationService: registrationService,
		languageService:     languageService,
		authMiddleware:      middleware.NewAuthMiddleware(jwtService, userStore),
	}, nil
}

// cleanup releases resources held by the application. Called after the
// HTTP server has finished shutting down.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
