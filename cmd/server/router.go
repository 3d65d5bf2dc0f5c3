package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lexiconlabs/lingua-api/internal/api"
	apimiddleware "github.com/lexiconlabs/lingua-api/internal/api/middleware"
)

// setupRouter configures the application router with all middleware and
// routes. The returned handler is what the HTTP server serves.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.registrationService)
	userHandler := api.NewUserHandler(app.languageService)
	languageHandler := api.NewLanguageHandler(app.languageService)

	// Public endpoints
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/register/complete", authHandler.RegisterComplete)
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/token", authHandler.Token)

	// Endpoints requiring a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(app.authMiddleware.Authenticate)

		r.Get("/users/me", userHandler.Me)
		r.Get("/users/me/languages", languageHandler.List)
		r.Post("/users/me/languages/{language}", languageHandler.Upsert)
		r.Delete("/users/me/languages/{language}", languageHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
