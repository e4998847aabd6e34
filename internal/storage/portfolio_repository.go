package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// PortfolioRepository handles portfolio and holding persistence
type PortfolioRepository struct {
	db *PostgresDB
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db *PostgresDB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create creates a new portfolio
func (r *PortfolioRepository) Create(ctx context.Context, portfolio *models.Portfolio) error {
	if portfolio.ID == "" {
		portfolio.ID = uuid.New().String()
	}
	portfolio.CreatedAt = time.Now()

	query := `
		INSERT INTO portfolios (id, user_id, name, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		portfolio.ID,
		portfolio.UserID,
		portfolio.Name,
		portfolio.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create portfolio: %w", err)
	}

	return nil
}

// ListByUser retrieves all portfolios owned by a user
func (r *PortfolioRepository) ListByUser(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []*models.Portfolio
	for rows.Next() {
		var p models.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios: %w", err)
	}

	return portfolios, nil
}

// GetByIDAndUser retrieves a portfolio by ID, verifying ownership. A
// portfolio owned by another user is reported as not found.
func (r *PortfolioRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolios
		WHERE id = $1 AND user_id = $2
	`

	var p models.Portfolio
	err := r.db.Pool().QueryRow(ctx, query, id, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewServiceError(types.CodeNotFound, fmt.Sprintf("portfolio not found: %s", id))
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return &p, nil
}

// AddHolding inserts a holding into a portfolio
func (r *PortfolioRepository) AddHolding(ctx context.Context, holding *models.Holding) error {
	if holding.ID == "" {
		holding.ID = uuid.New().String()
	}
	if holding.PurchasedAt.IsZero() {
		holding.PurchasedAt = time.Now()
	}

	query := `
		INSERT INTO portfolio_stocks (id, portfolio_id, symbol, shares, purchase_price, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		holding.ID,
		holding.PortfolioID,
		holding.Symbol,
		holding.Shares,
		holding.PurchasePrice,
		holding.PurchasedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add holding: %w", err)
	}

	return nil
}

// ListHoldings retrieves all holdings in a portfolio
func (r *PortfolioRepository) ListHoldings(ctx context.Context, portfolioID string) ([]*models.Holding, error) {
	query := `
		SELECT id, portfolio_id, symbol, shares, purchase_price, purchased_at
		FROM portfolio_stocks
		WHERE portfolio_id = $1
		ORDER BY purchased_at
	`

	rows, err := r.db.Pool().Query(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*models.Holding
	for rows.Next() {
		var h models.Holding
		err := rows.Scan(
			&h.ID,
			&h.PortfolioID,
			&h.Symbol,
			&h.Shares,
			&h.PurchasePrice,
			&h.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}
