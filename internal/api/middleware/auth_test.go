package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/mocks"
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
)

func seedUser(t *testing.T, userStore *mocks.MockUserStore) *domain.User {
	t.Helper()
	user, err := domain.NewUser("learner@example.com", "learner", "Lena Learner", domain.LanguageUkrainian, "password1")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password1"
	user.Password = ""
	userStore.AddUser(user)
	return user
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid token injects the user", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		user := seedUser(t, userStore)
		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: user.ID, Role: user.Role},
		}
		mw := NewAuthMiddleware(jwtService, userStore)

		var captured *domain.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured, _ = GetUser(r)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.ID, captured.ID)
	})

	t.Run("header problems", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name   string
			header string
		}{
			{name: "missing header", header: ""},
			{name: "no bearer prefix", header: "valid-token"},
			{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				userStore := mocks.NewMockUserStore()
				seedUser(t, userStore)
				mw := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)

				req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
				if tc.header != "" {
					req.Header.Set("Authorization", tc.header)
				}
				rec := httptest.NewRecorder()
				mw.Authenticate(nextShouldNotBeCalled(t)).ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			})
		}
	})

	t.Run("token validation failures", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name        string
			validateErr error
		}{
			{name: "expired token", validateErr: auth.ErrExpiredToken},
			{name: "invalid token", validateErr: auth.ErrInvalidToken},
			{name: "not yet valid", validateErr: auth.ErrTokenNotYetValid},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				userStore := mocks.NewMockUserStore()
				seedUser(t, userStore)
				jwtService := &mocks.MockJWTService{ValidateErr: tc.validateErr}
				mw := NewAuthMiddleware(jwtService, userStore)

				req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
				req.Header.Set("Authorization", "Bearer bad-token")
				rec := httptest.NewRecorder()
				mw.Authenticate(nextShouldNotBeCalled(t)).ServeHTTP(rec, req)

				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			})
		}
	})

	t.Run("token for a deleted user", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: uuid.New(), Role: domain.RoleUser},
		}
		mw := NewAuthMiddleware(jwtService, userStore)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		mw.Authenticate(nextShouldNotBeCalled(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for a deactivated user", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		user := seedUser(t, userStore)
		user.IsActive = false
		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: user.ID, Role: user.Role},
		}
		mw := NewAuthMiddleware(jwtService, userStore)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		mw.Authenticate(nextShouldNotBeCalled(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	runThroughAuth := func(t *testing.T, role domain.Role) *httptest.ResponseRecorder {
		t.Helper()
		userStore := mocks.NewMockUserStore()
		user := seedUser(t, userStore)
		user.Role = role
		jwtService := &mocks.MockJWTService{
			Claims: &auth.Claims{UserID: user.ID, Role: role},
		}
		mw := NewAuthMiddleware(jwtService, userStore)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		rec := httptest.NewRecorder()
		mw.Authenticate(RequireAdmin(next)).ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()
		rec := runThroughAuth(t, domain.RoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user is rejected", func(t *testing.T) {
		t.Parallel()
		rec := runThroughAuth(t, domain.RoleUser)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no user in context fails closed", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		rec := httptest.NewRecorder()
		RequireAdmin(nextShouldNotBeCalled(t)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

// nextShouldNotBeCalled fails the test if the middleware lets the request
// through.
func nextShouldNotBeCalled(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not have been called")
	})
}
