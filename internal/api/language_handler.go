package api

import (
	"net/http"

	"github.com/lexiconlabs/lingua-api/internal/api/shared"
	"github.com/lexiconlabs/lingua-api/internal/domain"
	"github.com/lexiconlabs/lingua-api/internal/service"
)

// LanguageHandler handles requests about the authenticated user's
// learning languages.
type LanguageHandler struct {
	languageService LanguageService
}

// NewLanguageHandler creates a new LanguageHandler with the given dependencies.
func NewLanguageHandler(languageService LanguageService) *LanguageHandler {
	return &LanguageHandler{
		languageService: languageService,
	}
}

// List handles GET /users/me/languages. An account with no languages gets
// an empty list, not an error.
func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w, r)
		return
	}

	records, err := h.languageService.ListByUser(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]LanguageRecordResponse, 0, len(records))
	for _, record := range records {
		isActive := user.ActiveLearningLanguageID != nil && *user.ActiveLearningLanguageID == record.ID
		responses = append(responses, NewLanguageRecordResponse(record, isActive))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Upsert handles POST /users/me/languages/{language}. Adding a language
// the user already studies updates its level instead of failing.
func (h *LanguageHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w, r)
		return
	}

	language, err := pathLanguage(r)
	if err != nil {
		// Unknown code means the resource does not exist.
		shared.RespondWithError(w, r, http.StatusNotFound, "Unsupported language code")
		return
	}

	var req UpsertLanguageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	level := domain.LanguageLevel("")
	if req.Level != "" {
		level, err = domain.ParseLanguageLevel(req.Level)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
	}

	result, err := h.languageService.Upsert(r.Context(), service.UpsertLanguageParams{
		UserID:     user.ID,
		Language:   language,
		Level:      level,
		MakeActive: req.MakeActive,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	isActive := result.Activated ||
		(user.ActiveLearningLanguageID != nil && *user.ActiveLearningLanguageID == result.Record.ID)
	shared.RespondWithJSON(w, r, http.StatusCreated, NewLanguageRecordResponse(result.Record, isActive))
}

// Delete handles DELETE /users/me/languages/{language}. The last language
// and the active language are protected from removal.
func (h *LanguageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w, r)
		return
	}

	language, err := pathLanguage(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Unsupported language code")
		return
	}

	if err := h.languageService.Delete(r.Context(), user, language); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
