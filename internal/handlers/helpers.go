package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/utils"
)

// sessionUser returns the authenticated user id or writes a 401.
func sessionUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteAppError(w, apperrors.Unauthorized("Unauthorized"))
		return uuid.Nil, false
	}
	return id, true
}

// checkUserID enforces that a client-supplied userId names the session user.
func checkUserID(sessionID uuid.UUID, claimed string) error {
	claimed = strings.TrimSpace(claimed)
	if claimed == "" {
		return apperrors.Validation("userId is required")
	}
	id, err := uuid.Parse(claimed)
	if err != nil || id != sessionID {
		return apperrors.Forbidden("userId does not match the authenticated user")
	}
	return nil
}

// pathID parses the {id} route parameter. A malformed id cannot name an
// existing record, so it is reported as notFound.
func pathID(r *http.Request, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.NotFound(notFound)
	}
	return id, nil
}
