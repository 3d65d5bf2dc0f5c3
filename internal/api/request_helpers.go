package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexiconlabs/lingua-api/internal/api/shared"
	"github.com/lexiconlabs/lingua-api/internal/domain"
)

// currentUser extracts the authenticated user placed in the request
// context by the authentication middleware.
func currentUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// pathLanguage parses the {language} path parameter. An unknown code maps
// to a 404 at the call site: from the client's view the resource
// /users/me/languages/xx does not exist.
func pathLanguage(r *http.Request) (domain.Language, error) {
	code := chi.URLParam(r, "language")
	language, err := domain.ParseLanguage(code)
	if err != nil {
		return "", err
	}
	return language, nil
}

// respondUnauthenticated is the shared response for requests that reach a
// protected handler without a user in context. It indicates a routing
// mistake rather than a client error, but fails closed.
func respondUnauthenticated(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
}
