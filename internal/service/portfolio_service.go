package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// Repository interfaces for dependency injection

// PortfolioRepository interface for portfolio data operations
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	ListByUser(ctx context.Context, userID string) ([]*models.Portfolio, error)
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Portfolio, error)
	AddHolding(ctx context.Context, holding *models.Holding) error
	ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error)
}

// PortfolioService handles portfolio management and valuation.
type PortfolioService struct {
	portfolioRepo PortfolioRepository
	provider      marketdata.Provider
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(portfolioRepo PortfolioRepository, provider marketdata.Provider) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		provider:      provider,
	}
}

// PortfolioView is a portfolio with enriched holdings and aggregates.
type PortfolioView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Holdings  []HoldingView `json:"holdings"`
	PortfolioTotals
}

// AddHoldingInput represents input for adding a holding to a portfolio.
type AddHoldingInput struct {
	PortfolioID   string  `json:"portfolioId"`
	UserID        string  `json:"userId"`
	Symbol        string  `json:"symbol"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchase_price"`
}

// ListPortfolios returns all of a user's portfolios with holdings enriched
// by current prices. A failed lookup degrades the affected holding only.
func (s *PortfolioService) ListPortfolios(ctx context.Context, userID string) ([]*PortfolioView, error) {
	portfolios, err := s.portfolioRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	views := make([]*PortfolioView, 0, len(portfolios))
	for _, p := range portfolios {
		holdings, err := s.portfolioRepo.ListHoldings(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list holdings for portfolio %s: %w", p.ID, err)
		}

		enriched, totals := EnrichHoldings(ctx, s.provider, holdings)

		views = append(views, &PortfolioView{
			ID:              p.ID,
			Name:            p.Name,
			CreatedAt:       p.CreatedAt,
			Holdings:        enriched,
			PortfolioTotals: totals,
		})
	}

	return views, nil
}

// AddHolding adds a holding to a portfolio after verifying ownership.
func (s *PortfolioService) AddHolding(ctx context.Context, input *AddHoldingInput) (*models.Holding, error) {
	if input.Symbol == "" {
		return nil, types.NewServiceError(types.CodeInvalidInput, "symbol is required")
	}

	if input.Shares <= 0 {
		return nil, types.NewServiceError(types.CodeInvalidInput, "shares must be positive")
	}

	if input.PurchasePrice <= 0 {
		return nil, types.NewServiceError(types.CodeInvalidInput, "purchase price must be positive")
	}

	// Ownership check: a portfolio owned by someone else reads as not found.
	portfolio, err := s.portfolioRepo.GetByIDAndUser(ctx, input.PortfolioID, input.UserID)
	if err != nil {
		return nil, err
	}

	holding := &models.Holding{
		PortfolioID:   portfolio.ID,
		Symbol:        input.Symbol,
		Shares:        input.Shares,
		PurchasePrice: input.PurchasePrice,
	}

	if err := s.portfolioRepo.AddHolding(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to add holding: %w", err)
	}

	return holding, nil
}
