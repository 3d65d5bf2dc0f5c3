package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlabs/lingua-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:     8080,
			LogLevel: "info",
		},
		Database: config.DatabaseConfig{
			URL: "postgres://localhost:5432/lingua_test",
		},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-key-thats-long-enough-for-hs256",
			TokenLifetimeMinutes: 60,
			// Cheap parameters to keep the wiring test fast.
			Argon2Memory:      8 * 1024,
			Argon2Iterations:  1,
			Argon2Parallelism: 1,
		},
	}
}

// newTestApplication wires the full dependency graph without a live
// database. Routes that would touch the database are only exercised up
// to the point where authentication rejects the request.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), logger, nil)
	require.NoError(t, err)
	return app
}

func TestSetupRouter(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter()

	t.Run("health check responds OK", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})

	t.Run("protected routes reject unauthenticated requests", func(t *testing.T) {
		t.Parallel()

		paths := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/users/me"},
			{http.MethodGet, "/users/me/languages"},
			{http.MethodPost, "/users/me/languages/de"},
			{http.MethodDelete, "/users/me/languages/de"},
		}

		for _, p := range paths {
			req := httptest.NewRequest(p.method, p.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code,
				"%s %s should require authentication", p.method, p.path)
		}
	})

	t.Run("unknown route returns 404", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/auth/unknown", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRunMigrationsRejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := runMigrations(nil, "sideways", logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
