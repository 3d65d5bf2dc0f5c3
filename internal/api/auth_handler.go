package api

import (
	"context"
	"net/http"

	"github.com/lexiconlabs/lingua-api/internal/api/shared"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
)

// RegistrationService is the slice of the registration service the auth
// handler needs.
type RegistrationService interface {
	Register(ctx context.Context, params service.RegisterParams) (*domain.User, error)
	RegisterWithLanguage(ctx context.Context, params service.RegisterWithLanguageParams) (*domain.User, *domain.LanguageProficiency, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// AuthHandler handles registration and login API requests.
type AuthHandler struct {
	registrationService RegistrationService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(registrationService RegistrationService) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	params, err := registerParamsFromRequest(req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	user, err := h.registrationService.Register(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user, nil))
}

// RegisterComplete handles POST /auth/register/complete. The account and
// its first learning language are created together; a failure on either
// leaves nothing behind.
func (h *AuthHandler) RegisterComplete(w http.ResponseWriter, r *http.Request) {
	var req RegisterCompleteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	baseParams, err := registerParamsFromRequest(req.RegisterRequest)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	learningLanguage, err := domain.ParseLanguage(req.LearningLanguage)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}
	level := domain.DefaultLanguageLevel
	if req.LanguageLevel != "" {
		level, err = domain.ParseLanguageLevel(req.LanguageLevel)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
	}

	user, proficiency, err := h.registrationService.RegisterWithLanguage(r.Context(), service.RegisterWithLanguageParams{
		RegisterParams:   baseParams,
		LearningLanguage: learningLanguage,
		Level:            level,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user, proficiency))
}

// Login handles POST /auth/login with a JSON body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.login(w, r, req.Email, req.Password)
}

// Token handles POST /auth/token with an application/x-www-form-urlencoded
// body in the OAuth2 password-grant shape: username carries the email.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	h.login(w, r, email, password)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, email, password string) {
	_, token, err := h.registrationService.Login(r.Context(), email, password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// registerParamsFromRequest converts a validated request into service
// params, parsing the native language code.
func registerParamsFromRequest(req RegisterRequest) (service.RegisterParams, error) {
	nativeLanguage, err := domain.ParseLanguage(req.NativeLanguage)
	if err != nil {
		return service.RegisterParams{}, err
	}
	return service.RegisterParams{
		Email:          req.Email,
		Username:       req.Username,
		Name:           req.Name,
		NativeLanguage: nativeLanguage,
		Password:       req.Password,
	}, nil
}
