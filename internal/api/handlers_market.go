package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// handleGetStock handles GET /api/market/stock/{symbol}. Optional query parameters
// period and interval control the historical window.
func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]
	period := r.URL.Query().Get("period")
	interval := r.URL.Query().Get("interval")

	detail, err := s.marketService.GetStockDetail(r.Context(), symbol, period, interval)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// handleSearch handles GET /api/market/search?query=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	results, err := s.marketService.Search(query)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// handleRecommendations handles GET /api/recommendations.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.marketService.Recommendations())
}
