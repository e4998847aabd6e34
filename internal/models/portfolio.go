package models

import (
	"time"
)

// Portfolio represents a named collection of holdings owned by a user
type Portfolio struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Holding represents a quantity of a stock symbol owned within a portfolio,
// with a recorded purchase price.
type Holding struct {
	ID            string    `json:"id" db:"id"`
	PortfolioID   string    `json:"portfolioId" db:"portfolio_id"`
	Symbol        string    `json:"symbol" db:"symbol"`
	Shares        float64   `json:"shares" db:"shares"`
	PurchasePrice float64   `json:"purchase_price" db:"purchase_price"`
	PurchasedAt   time.Time `json:"purchasedAt" db:"purchased_at"`
}
