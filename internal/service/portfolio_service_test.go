package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// mockPortfolioRepo is an in-memory PortfolioRepository.
type mockPortfolioRepo struct {
	portfolios map[string]*models.Portfolio
	holdings   map[string][]*models.Holding
	failList   bool
}

func newMockPortfolioRepo() *mockPortfolioRepo {
	return &mockPortfolioRepo{
		portfolios: make(map[string]*models.Portfolio),
		holdings:   make(map[string][]*models.Holding),
	}
}

func (m *mockPortfolioRepo) addPortfolio(userID, name string) *models.Portfolio {
	p := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	m.portfolios[p.ID] = p
	return p
}

func (m *mockPortfolioRepo) Create(ctx context.Context, portfolio *models.Portfolio) error {
	if portfolio.ID == "" {
		portfolio.ID = uuid.New().String()
	}
	m.portfolios[portfolio.ID] = portfolio
	return nil
}

func (m *mockPortfolioRepo) ListByUser(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	if m.failList {
		return nil, fmt.Errorf("database unavailable")
	}
	var out []*models.Portfolio
	for _, p := range m.portfolios {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPortfolioRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Portfolio, error) {
	p, ok := m.portfolios[id]
	if !ok || p.UserID != userID {
		return nil, &types.ServiceError{Code: types.CodeNotFound, Message: "portfolio not found"}
	}
	return p, nil
}

func (m *mockPortfolioRepo) AddHolding(ctx context.Context, holding *models.Holding) error {
	if holding.ID == "" {
		holding.ID = uuid.New().String()
	}
	if holding.PurchasedAt.IsZero() {
		holding.PurchasedAt = time.Now()
	}
	m.holdings[holding.PortfolioID] = append(m.holdings[holding.PortfolioID], holding)
	return nil
}

func (m *mockPortfolioRepo) ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	return m.holdings[portfolioID], nil
}

func TestPortfolioService_ListPortfolios(t *testing.T) {
	repo := newMockPortfolioRepo()
	provider := newFakeProvider()
	provider.setPrice("AAPL", 150)
	svc := NewPortfolioService(repo, provider)

	p := repo.addPortfolio("user-1", "My Portfolio")
	repo.holdings[p.ID] = []*models.Holding{
		{ID: "h1", PortfolioID: p.ID, Symbol: "AAPL", Shares: 10, PurchasePrice: 100},
	}

	views, err := svc.ListPortfolios(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, p.ID, view.ID)
	assert.Equal(t, "My Portfolio", view.Name)
	require.Len(t, view.Holdings, 1)
	assert.Equal(t, 1500.0, view.TotalValue)
	assert.Equal(t, 500.0, view.TotalGainLoss)
	assert.Equal(t, 1000.0, view.TotalInvestment)
}

func TestPortfolioService_ListPortfolios_Empty(t *testing.T) {
	repo := newMockPortfolioRepo()
	svc := NewPortfolioService(repo, newFakeProvider())

	views, err := svc.ListPortfolios(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestPortfolioService_ListPortfolios_OnlyOwnPortfolios(t *testing.T) {
	repo := newMockPortfolioRepo()
	svc := NewPortfolioService(repo, newFakeProvider())

	repo.addPortfolio("user-1", "Mine")
	repo.addPortfolio("user-2", "Theirs")

	views, err := svc.ListPortfolios(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Mine", views[0].Name)
}

func TestPortfolioService_AddHolding(t *testing.T) {
	repo := newMockPortfolioRepo()
	svc := NewPortfolioService(repo, newFakeProvider())

	p := repo.addPortfolio("user-1", "My Portfolio")

	holding, err := svc.AddHolding(context.Background(), &AddHoldingInput{
		PortfolioID:   p.ID,
		UserID:        "user-1",
		Symbol:        "AAPL",
		Shares:        10,
		PurchasePrice: 100,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, holding.ID)
	assert.Equal(t, p.ID, holding.PortfolioID)
	assert.Equal(t, "AAPL", holding.Symbol)
	assert.False(t, holding.PurchasedAt.IsZero())
}

func TestPortfolioService_AddHolding_Validation(t *testing.T) {
	repo := newMockPortfolioRepo()
	svc := NewPortfolioService(repo, newFakeProvider())
	p := repo.addPortfolio("user-1", "My Portfolio")

	tests := []struct {
		name  string
		input *AddHoldingInput
	}{
		{
			name:  "missing symbol",
			input: &AddHoldingInput{PortfolioID: p.ID, UserID: "user-1", Shares: 1, PurchasePrice: 1},
		},
		{
			name:  "zero shares",
			input: &AddHoldingInput{PortfolioID: p.ID, UserID: "user-1", Symbol: "AAPL", Shares: 0, PurchasePrice: 1},
		},
		{
			name:  "negative shares",
			input: &AddHoldingInput{PortfolioID: p.ID, UserID: "user-1", Symbol: "AAPL", Shares: -1, PurchasePrice: 1},
		},
		{
			name:  "zero purchase price",
			input: &AddHoldingInput{PortfolioID: p.ID, UserID: "user-1", Symbol: "AAPL", Shares: 1, PurchasePrice: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddHolding(context.Background(), tt.input)
			var svcErr *types.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, types.CodeInvalidInput, svcErr.Code)
		})
	}
}

func TestPortfolioService_AddHolding_NotOwned(t *testing.T) {
	repo := newMockPortfolioRepo()
	svc := NewPortfolioService(repo, newFakeProvider())
	p := repo.addPortfolio("user-2", "Theirs")

	_, err := svc.AddHolding(context.Background(), &AddHoldingInput{
		PortfolioID:   p.ID,
		UserID:        "user-1",
		Symbol:        "AAPL",
		Shares:        1,
		PurchasePrice: 1,
	})

	// Someone else's portfolio reads the same as a nonexistent one.
	var svcErr *types.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, types.CodeNotFound, svcErr.Code)
	assert.Empty(t, repo.holdings[p.ID])
}
