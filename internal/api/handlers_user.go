package api

import (
	"net/http"

	"github.com/stockfolio/stockfolio/internal/types"
)

// handleGetUser handles GET /api/user. It returns the profile of the
// currently authenticated user.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, types.CodeUnauthenticated, "authentication required", nil)
		return
	}

	user, err := s.accountService.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
