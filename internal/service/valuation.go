// Package service implements the application services: accounts, portfolios,
// watchlists and market data. The valuation and watchlist enrichers live
// here; both tolerate per-symbol lookup failure without failing the request.
package service

import (
	"context"
	"time"

	"github.com/stockfolio/stockfolio/internal/logging"
	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/models"
)

// HoldingView is a holding enriched with current market data.
type HoldingView struct {
	ID              string    `json:"id"`
	Symbol          string    `json:"symbol"`
	Shares          float64   `json:"shares"`
	PurchasePrice   float64   `json:"purchase_price"`
	PurchasedAt     time.Time `json:"purchased_at"`
	CurrentPrice    float64   `json:"current_price"`
	CurrentValue    float64   `json:"current_value"`
	PurchaseValue   float64   `json:"purchase_value"`
	GainLoss        float64   `json:"gain_loss"`
	GainLossPercent float64   `json:"gain_loss_percent"`
}

// PortfolioTotals aggregates holding values across a portfolio. Each total is
// computed independently per request, never incrementally maintained.
type PortfolioTotals struct {
	TotalValue      float64 `json:"total_value"`
	TotalGainLoss   float64 `json:"total_gain_loss"`
	TotalInvestment float64 `json:"total_investment"`
}

// EnrichHoldings produces an enriched view for each holding. A price lookup
// failure for one symbol degrades that holding's numbers to zero and
// processing continues; it never fails the overall computation.
func EnrichHoldings(ctx context.Context, provider marketdata.Provider, holdings []*models.Holding) ([]HoldingView, PortfolioTotals) {
	views := make([]HoldingView, 0, len(holdings))
	var totals PortfolioTotals

	for _, h := range holdings {
		view := enrichHolding(ctx, provider, h)
		views = append(views, view)

		totals.TotalValue += view.CurrentValue
		totals.TotalGainLoss += view.GainLoss
		totals.TotalInvestment += view.PurchaseValue
	}

	return views, totals
}

func enrichHolding(ctx context.Context, provider marketdata.Provider, h *models.Holding) HoldingView {
	view := HoldingView{
		ID:            h.ID,
		Symbol:        h.Symbol,
		Shares:        h.Shares,
		PurchasePrice: h.PurchasePrice,
		PurchasedAt:   h.PurchasedAt,
	}

	// Price unknown maps to zero, not to an error.
	currentPrice := 0.0
	quote, err := provider.Quote(ctx, h.Symbol)
	if err != nil {
		logging.FromContext(ctx).WithFields(map[string]interface{}{
			"symbol": h.Symbol,
			"error":  err.Error(),
		}).Warn("price lookup failed, degrading holding to zero")
	} else if quote != nil {
		currentPrice = quote.CurrentPrice
	}

	view.CurrentPrice = currentPrice
	view.CurrentValue = currentPrice * h.Shares
	view.PurchaseValue = h.PurchasePrice * h.Shares
	view.GainLoss = view.CurrentValue - view.PurchaseValue

	// Policy: percentage is defined as zero for non-positive purchase value.
	if view.PurchaseValue > 0 {
		view.GainLossPercent = view.GainLoss / view.PurchaseValue * 100
	}

	return view
}

// WatchlistEntryView is a watchlist entry enriched with current market data.
type WatchlistEntryView struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	AddedAt       time.Time `json:"added_at"`
	CompanyName   string    `json:"company_name"`
	CurrentPrice  float64   `json:"current_price"`
	ChangePercent float64   `json:"change_percent"`
}

// unknownCompany is the sentinel name for entries whose lookup failed.
const unknownCompany = "Unknown"

// EnrichWatchlist produces an enriched view for each watchlist entry with
// the same per-item failure isolation as EnrichHoldings.
func EnrichWatchlist(ctx context.Context, provider marketdata.Provider, entries []*models.WatchlistEntry) []WatchlistEntryView {
	views := make([]WatchlistEntryView, 0, len(entries))

	for _, e := range entries {
		view := WatchlistEntryView{
			ID:          e.ID,
			Symbol:      e.Symbol,
			AddedAt:     e.AddedAt,
			CompanyName: unknownCompany,
		}

		quote, err := provider.Quote(ctx, e.Symbol)
		if err != nil {
			logging.FromContext(ctx).WithFields(map[string]interface{}{
				"symbol": e.Symbol,
				"error":  err.Error(),
			}).Warn("price lookup failed for watchlist entry")
		} else if quote != nil {
			if quote.CompanyName != "" {
				view.CompanyName = quote.CompanyName
			}
			view.CurrentPrice = quote.CurrentPrice
			view.ChangePercent = quote.ChangePercent
		}

		views = append(views, view)
	}

	return views
}
