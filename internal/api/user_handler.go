package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/lexiconlabs/lingua-api/internal/api/shared"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
)

// LanguageService is the slice of the language service the user and
// language handlers need.
type LanguageService interface {
	Upsert(ctx context.Context, params service.UpsertLanguageParams) (*service.UpsertLanguageResult, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.LanguageProficiency, error)
	Delete(ctx context.Context, user *domain.User, language domain.Language) error
	GetActive(ctx context.Context, user *domain.User) (*domain.LanguageProficiency, error)
}

// UserHandler handles requests about the authenticated account.
type UserHandler struct {
	languageService LanguageService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(languageService LanguageService) *UserHandler {
	return &UserHandler{
		languageService: languageService,
	}
}

// Me handles GET /users/me. The profile embeds the active learning
// language record when one is set.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w, r)
		return
	}

	active, err := h.languageService.GetActive(r.Context(), user)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user, active))
}
