package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/types"
)

func TestMarketService_GetStockDetail(t *testing.T) {
	provider := newFakeProvider()
	provider.info["AAPL"] = &marketdata.CompanyInfo{
		Symbol: "AAPL",
		Name:   "Apple Inc.",
		Sector: "Technology",
	}
	provider.history["AAPL"] = []marketdata.Bar{
		{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 185.64},
	}
	svc := NewMarketService(provider)

	detail, err := svc.GetStockDetail(context.Background(), "aapl", "1mo", "1d")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", detail.Symbol)
	require.NotNil(t, detail.CompanyInfo)
	assert.Equal(t, "Apple Inc.", detail.CompanyInfo.Name)
	require.Len(t, detail.HistoricalData, 1)
}

func TestMarketService_GetStockDetail_PartialData(t *testing.T) {
	// Company info resolves but history does not; the detail is partial,
	// not an error.
	provider := newFakeProvider()
	provider.info["AAPL"] = &marketdata.CompanyInfo{Symbol: "AAPL", Name: "Apple Inc."}
	svc := NewMarketService(provider)

	detail, err := svc.GetStockDetail(context.Background(), "AAPL", "1mo", "1d")
	require.NoError(t, err)
	assert.NotNil(t, detail.CompanyInfo)
	assert.Empty(t, detail.HistoricalData)
}

func TestMarketService_GetStockDetail_NotFound(t *testing.T) {
	svc := NewMarketService(newFakeProvider())

	_, err := svc.GetStockDetail(context.Background(), "NOPE", "1mo", "1d")
	var svcErr *types.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, types.CodeNotFound, svcErr.Code)
}

func TestMarketService_GetStockDetail_EmptySymbol(t *testing.T) {
	svc := NewMarketService(newFakeProvider())

	_, err := svc.GetStockDetail(context.Background(), "  ", "1mo", "1d")
	var svcErr *types.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, types.CodeInvalidInput, svcErr.Code)
}

func TestMarketService_Search(t *testing.T) {
	svc := NewMarketService(newFakeProvider())

	results, err := svc.Search("apple")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "AAPL", results[0].Symbol)
}

func TestMarketService_Search_QueryTooShort(t *testing.T) {
	svc := NewMarketService(newFakeProvider())

	for _, q := range []string{"", "a", " a "} {
		_, err := svc.Search(q)
		var svcErr *types.ServiceError
		require.ErrorAs(t, err, &svcErr, "query %q", q)
		assert.Equal(t, types.CodeInvalidInput, svcErr.Code)
	}
}

func TestMarketService_Recommendations(t *testing.T) {
	svc := NewMarketService(newFakeProvider())

	recs := svc.Recommendations()
	assert.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEmpty(t, r.Symbol)
		assert.NotEmpty(t, r.Reason)
	}
}
