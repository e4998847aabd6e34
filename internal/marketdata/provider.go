// Package marketdata provides access to the external market-data provider:
// current quotes, company metadata, and historical prices. Quote data is
// fetched fresh on every request and never persisted.
package marketdata

import (
	"context"
	"time"
)

// Provider is the quote-lookup capability injected into services. It can be
// faked deterministically in tests.
type Provider interface {
	// Quote returns the current quote snapshot for a symbol.
	Quote(ctx context.Context, symbol string) (*QuoteSnapshot, error)
	// CompanyInfo returns company metadata for a symbol.
	CompanyInfo(ctx context.Context, symbol string) (*CompanyInfo, error)
	// History returns historical price bars for a symbol over the given
	// period (e.g. "1mo", "1y") and interval (e.g. "1d", "1wk").
	History(ctx context.Context, symbol, period, interval string) ([]Bar, error)
}

// QuoteSnapshot is a transient per-request view of a symbol's market state.
type QuoteSnapshot struct {
	Symbol           string  `json:"symbol"`
	CompanyName      string  `json:"company_name"`
	CurrentPrice     float64 `json:"current_price"`
	ChangePercent    float64 `json:"change_percent"`
	DayHigh          float64 `json:"day_high"`
	DayLow           float64 `json:"day_low"`
	Volume           int64   `json:"volume"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
	PERatio          float64 `json:"pe_ratio"`
	// DividendYield is a percentage. Zero means either "no dividend" or
	// "unknown"; the two are not distinguished.
	DividendYield float64 `json:"dividend_yield"`
	Beta          float64 `json:"beta"`
}

// CompanyInfo holds company metadata for the stock detail endpoint.
type CompanyInfo struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry"`
	Website     string  `json:"website"`
	Description string  `json:"description"`
	MarketCap   float64 `json:"market_cap"`
}

// Bar is a single historical price bar.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}
