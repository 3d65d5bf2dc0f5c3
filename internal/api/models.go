package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/lexiconlabs/lingua-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the basic registration endpoint.
type RegisterRequest struct {
	Email          string `json:"email"           validate:"required,email"`
	Username       string `json:"username"        validate:"required,min=3,max=50"`
	Name           string `json:"name"            validate:"required,min=1,max=100"`
	NativeLanguage string `json:"native_language" validate:"required"`
	Password       string `json:"password"        validate:"required,min=8,max=100"`
}

// RegisterCompleteRequest defines the payload for registration that also
// creates the first learning language.
type RegisterCompleteRequest struct {
	RegisterRequest
	LearningLanguage string `json:"learning_language" validate:"required"`
	LanguageLevel    string `json:"language_level"    validate:"omitempty"`
}

// LoginRequest defines the payload for the JSON login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for authentication
// endpoints. TokenType is always "bearer".
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpsertLanguageRequest defines the payload for adding or updating a
// learning language. The language itself comes from the URL path.
type UpsertLanguageRequest struct {
	Level      string `json:"level"       validate:"omitempty"`
	MakeActive bool   `json:"make_active"`
}

// UserResponse is the public representation of an account.
type UserResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	Username       string                  `json:"username"`
	Name           string                  `json:"name"`
	NativeLanguage string                  `json:"native_language"`
	Role           string                  `json:"role"`
	IsActive       bool                    `json:"is_active"`
	ActiveLanguage *LanguageRecordResponse `json:"active_language,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

// LanguageRecordResponse is the public representation of a learning-language
// record.
type LanguageRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	Language  string    `json:"language"`
	Level     string    `json:"level"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a domain user and its active
// language record, which may be nil.
func NewUserResponse(user *domain.User, active *domain.LanguageProficiency) UserResponse {
	resp := UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Username:       user.Username,
		Name:           user.Name,
		NativeLanguage: user.NativeLanguage.String(),
		Role:           user.Role.String(),
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
	}
	if active != nil {
		record := NewLanguageRecordResponse(active, true)
		resp.ActiveLanguage = &record
	}
	return resp
}

// NewLanguageRecordResponse builds a LanguageRecordResponse from a domain
// record.
func NewLanguageRecordResponse(record *domain.LanguageProficiency, isActive bool) LanguageRecordResponse {
	return LanguageRecordResponse{
		ID:        record.ID,
		Language:  record.Language.String(),
		Level:     record.Level.String(),
		IsActive:  isActive,
		CreatedAt: record.CreatedAt,
	}
}
