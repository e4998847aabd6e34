package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stockfolio/stockfolio/internal/types"
)

// handleListWatchlist handles GET /api/watchlist. Entries are enriched with
// current prices; a failed lookup degrades the entry, never the list.
func (s *Server) handleListWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, types.CodeUnauthenticated, "authentication required", nil)
		return
	}

	entries, err := s.watchlistService.List(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// addWatchlistRequest is the body of POST /api/watchlist/add.
type addWatchlistRequest struct {
	Symbol string `json:"symbol"`
}

// handleAddToWatchlist handles POST /api/watchlist/add.
func (s *Server) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, types.CodeUnauthenticated, "authentication required", nil)
		return
	}

	var req addWatchlistRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, types.CodeInvalidInput, "Invalid request body", nil)
		return
	}

	entry, err := s.watchlistService.Add(r.Context(), userID, req.Symbol)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "added to watchlist",
		"entry":   entry,
	})
}

// handleRemoveFromWatchlist handles DELETE /api/watchlist/remove/{id}.
func (s *Server) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, types.CodeUnauthenticated, "authentication required", nil)
		return
	}

	entryID := mux.Vars(r)["id"]

	if err := s.watchlistService.Remove(r.Context(), userID, entryID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "removed from watchlist",
	})
}
