package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stockfolio/stockfolio/internal/service"
	"github.com/stockfolio/stockfolio/internal/types"
)

// handleListPortfolios handles GET /api/portfolio. It returns the user's
// portfolios with holdings enriched by current prices.
func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, types.CodeUnauthenticated, "authentication required", nil)
		return
	}

	portfolios, err := s.portfolioService.ListPortfolios(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, portfolios)
}

// addHoldingRequest is the body of POST /api/portfolio/{id}/add.
type addHoldingRequest struct {
	Symbol        string  `json:"symbol"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchase_price"`
}

// handleAddHolding handles POST /api/portfolio/{id}/add.
func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, types.CodeUnauthenticated, "authentication required", nil)
		return
	}

	var req addHoldingRequest
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, types.CodeInvalidInput, "Invalid request body", nil)
		return
	}

	holding, err := s.portfolioService.AddHolding(r.Context(), &service.AddHoldingInput{
		PortfolioID:   mux.Vars(r)["id"],
		UserID:        userID,
		Symbol:        req.Symbol,
		Shares:        req.Shares,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "holding added",
		"holding": holding,
	})
}
