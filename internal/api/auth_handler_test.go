package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
	"github.com/lexiconlabs/lingua-api/internal/service/auth"
)

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("learner@example.com", "learner", "Lena Learner", domain.LanguageUkrainian, "password1")
	require.NoError(t, err)
	user.HashedPassword = "hashed:password1"
	user.Password = ""
	return user
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func validRegisterBody() map[string]any {
	return map[string]any{
		"email":           "learner@example.com",
		"username":        "learner",
		"name":            "Lena Learner",
		"native_language": "uk",
		"password":        "password1",
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("successful registration returns 201 with user view", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t)
		handler := NewAuthHandler(&stubRegistrationService{
			RegisterFn: func(ctx context.Context, params service.RegisterParams) (*domain.User, error) {
				assert.Equal(t, "learner@example.com", params.Email)
				assert.Equal(t, domain.LanguageUkrainian, params.NativeLanguage)
				return user, nil
			},
		})

		rec := postJSON(t, handler.Register, "/auth/register", validRegisterBody())
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "learner", resp.Username)
		assert.Nil(t, resp.ActiveLanguage)
		assert.NotContains(t, rec.Body.String(), "password", "response must not leak credentials")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		body := validRegisterBody()
		delete(body, "email")
		rec := postJSON(t, handler.Register, "/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown native language", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		body := validRegisterBody()
		body["native_language"] = "xx"
		rec := postJSON(t, handler.Register, "/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{
			RegisterFn: func(ctx context.Context, params service.RegisterParams) (*domain.User, error) {
				return nil, service.ErrEmailTaken
			},
		})

		rec := postJSON(t, handler.Register, "/auth/register", validRegisterBody())
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email already registered")
	})
}

func TestAuthHandler_RegisterComplete(t *testing.T) {
	t.Parallel()

	t.Run("creates account with learning language", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t)
		proficiency, err := domain.NewLanguageProficiency(user.ID, domain.LanguageGerman, domain.LevelB1)
		require.NoError(t, err)
		user.ActiveLearningLanguageID = &proficiency.ID

		handler := NewAuthHandler(&stubRegistrationService{
			RegisterWithLanguageFn: func(ctx context.Context, params service.RegisterWithLanguageParams) (*domain.User, *domain.LanguageProficiency, error) {
				assert.Equal(t, domain.LanguageGerman, params.LearningLanguage)
				assert.Equal(t, domain.LevelB1, params.Level)
				return user, proficiency, nil
			},
		})

		body := validRegisterBody()
		body["learning_language"] = "de"
		body["language_level"] = "B1"
		rec := postJSON(t, handler.RegisterComplete, "/auth/register/complete", body)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.ActiveLanguage)
		assert.Equal(t, "de", resp.ActiveLanguage.Language)
		assert.Equal(t, "B1", resp.ActiveLanguage.Level)
		assert.True(t, resp.ActiveLanguage.IsActive)
	})

	t.Run("level defaults when omitted", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t)
		handler := NewAuthHandler(&stubRegistrationService{
			RegisterWithLanguageFn: func(ctx context.Context, params service.RegisterWithLanguageParams) (*domain.User, *domain.LanguageProficiency, error) {
				assert.Equal(t, domain.DefaultLanguageLevel, params.Level)
				proficiency, err := domain.NewLanguageProficiency(user.ID, params.LearningLanguage, params.Level)
				require.NoError(t, err)
				return user, proficiency, nil
			},
		})

		body := validRegisterBody()
		body["learning_language"] = "en"
		rec := postJSON(t, handler.RegisterComplete, "/auth/register/complete", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unknown learning language", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		body := validRegisterBody()
		body["learning_language"] = "fr"
		rec := postJSON(t, handler.RegisterComplete, "/auth/register/complete", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		body := validRegisterBody()
		body["learning_language"] = "de"
		body["language_level"] = "Z9"
		rec := postJSON(t, handler.RegisterComplete, "/auth/register/complete", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return a bearer token", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t)
		handler := NewAuthHandler(&stubRegistrationService{
			LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
				assert.Equal(t, "learner@example.com", email)
				return user, "signed-token", nil
			},
		})

		rec := postJSON(t, handler.Login, "/auth/login", map[string]any{
			"email":    "learner@example.com",
			"password": "password1",
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("invalid credentials map to 401", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{
			LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
				return nil, "", auth.ErrInvalidCredentials
			},
		})

		rec := postJSON(t, handler.Login, "/auth/login", map[string]any{
			"email":    "learner@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email or password")
	})

	t.Run("deactivated account maps to 401", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{
			LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
				return nil, "", service.ErrUserInactive
			},
		})

		rec := postJSON(t, handler.Login, "/auth/login", map[string]any{
			"email":    "learner@example.com",
			"password": "Secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Account is deactivated")
	})

	t.Run("missing password fails validation", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		rec := postJSON(t, handler.Login, "/auth/login", map[string]any{
			"email": "learner@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Token(t *testing.T) {
	t.Parallel()

	postForm := func(t *testing.T, handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec
	}

	t.Run("form username carries the email", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t)
		handler := NewAuthHandler(&stubRegistrationService{
			LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
				assert.Equal(t, "learner@example.com", email)
				assert.Equal(t, "password1", password)
				return user, "signed-token", nil
			},
		})

		rec := postForm(t, handler.Token, url.Values{
			"username": {"learner@example.com"},
			"password": {"password1"},
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signed-token", resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{})

		rec := postForm(t, handler.Token, url.Values{"username": {"learner@example.com"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&stubRegistrationService{
			LoginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
				return nil, "", auth.ErrInvalidCredentials
			},
		})

		rec := postForm(t, handler.Token, url.Values{
			"username": {"learner@example.com"},
			"password": {"wrong"},
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
