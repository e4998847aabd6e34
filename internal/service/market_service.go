package service

import (
	"context"
	"strings"

	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/types"
)

// minSearchQueryLen is the minimum search query length.
const minSearchQueryLen = 2

// MarketService handles stock detail, search and recommendations.
type MarketService struct {
	provider marketdata.Provider
}

// NewMarketService creates a new market service
func NewMarketService(provider marketdata.Provider) *MarketService {
	return &MarketService{provider: provider}
}

// StockDetail is the response for the stock detail endpoint.
type StockDetail struct {
	Symbol         string                  `json:"symbol"`
	CompanyInfo    *marketdata.CompanyInfo `json:"company_info"`
	HistoricalData []marketdata.Bar        `json:"historical_data"`
}

// GetStockDetail returns company metadata and historical bars for a symbol.
// Unlike the enrichment paths, provider failure here surfaces to the caller:
// no data at all reads as not found.
func (s *MarketService) GetStockDetail(ctx context.Context, symbol, period, interval string) (*StockDetail, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, types.NewServiceError(types.CodeInvalidInput, "symbol is required")
	}

	history, historyErr := s.provider.History(ctx, symbol, period, interval)

	info, infoErr := s.provider.CompanyInfo(ctx, symbol)
	if infoErr != nil && historyErr != nil {
		return nil, types.NewServiceError(types.CodeNotFound, "no data found for symbol: " + symbol)
	}

	detail := &StockDetail{Symbol: symbol}
	if infoErr == nil {
		detail.CompanyInfo = info
	}
	if historyErr == nil {
		detail.HistoricalData = history
	}

	return detail, nil
}

// Search filters the static reference list. Queries shorter than two
// characters are rejected.
func (s *MarketService) Search(query string) ([]marketdata.Listing, error) {
	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLen {
		return nil, types.NewServiceError(types.CodeInvalidInput, "query must be at least 2 characters")
	}

	return marketdata.SearchListings(query), nil
}

// Recommendations returns the static recommendation list.
func (s *MarketService) Recommendations() []marketdata.Recommendation {
	return marketdata.Recommendations()
}
