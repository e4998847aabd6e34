package service

import (
	"context"
	"fmt"

	"github.com/stockfolio/stockfolio/internal/marketdata"
)

// fakeProvider is a deterministic marketdata.Provider for tests. Symbols in
// failures error out; everything else resolves from quotes.
type fakeProvider struct {
	quotes   map[string]*marketdata.QuoteSnapshot
	failures map[string]bool
	info     map[string]*marketdata.CompanyInfo
	history  map[string][]marketdata.Bar
	calls    []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		quotes:   make(map[string]*marketdata.QuoteSnapshot),
		failures: make(map[string]bool),
		info:     make(map[string]*marketdata.CompanyInfo),
		history:  make(map[string][]marketdata.Bar),
	}
}

func (f *fakeProvider) setPrice(symbol string, price float64) {
	f.quotes[symbol] = &marketdata.QuoteSnapshot{
		Symbol:       symbol,
		CompanyName:  symbol + " Inc.",
		CurrentPrice: price,
	}
}

func (f *fakeProvider) Quote(ctx context.Context, symbol string) (*marketdata.QuoteSnapshot, error) {
	f.calls = append(f.calls, symbol)
	if f.failures[symbol] {
		return nil, fmt.Errorf("quote %s: provider unavailable", symbol)
	}
	if q, ok := f.quotes[symbol]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("quote %s: no data", symbol)
}

func (f *fakeProvider) CompanyInfo(ctx context.Context, symbol string) (*marketdata.CompanyInfo, error) {
	if f.failures[symbol] {
		return nil, fmt.Errorf("company info %s: provider unavailable", symbol)
	}
	if info, ok := f.info[symbol]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("company info %s: no data", symbol)
}

func (f *fakeProvider) History(ctx context.Context, symbol, period, interval string) ([]marketdata.Bar, error) {
	if f.failures[symbol] {
		return nil, fmt.Errorf("history %s: provider unavailable", symbol)
	}
	if bars, ok := f.history[symbol]; ok {
		return bars, nil
	}
	return nil, fmt.Errorf("history %s: no data", symbol)
}
