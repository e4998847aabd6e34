package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/stockfolio/stockfolio/internal/config"
	"github.com/stockfolio/stockfolio/internal/types"
)

// YahooClient fetches quotes, company metadata and historical bars from a
// Yahoo-Finance-compatible HTTP API. All calls are throttled client-side to
// stay under the provider's request budget.
type YahooClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewYahooClient creates a market-data client from configuration.
func NewYahooClient(cfg *config.MarketDataConfig) *YahooClient {
	return &YahooClient{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
	}
}

// yahooQuoteResponse mirrors the /v7/finance/quote payload.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuote `json:"result"`
		Error  *yahooError  `json:"error"`
	} `json:"quoteResponse"`
}

type yahooQuote struct {
	Symbol                      string  `json:"symbol"`
	ShortName                   string  `json:"shortName"`
	LongName                    string  `json:"longName"`
	RegularMarketPrice          float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent  float64 `json:"regularMarketChangePercent"`
	RegularMarketDayHigh        float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow         float64 `json:"regularMarketDayLow"`
	RegularMarketVolume         int64   `json:"regularMarketVolume"`
	FiftyTwoWeekHigh            float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow             float64 `json:"fiftyTwoWeekLow"`
	TrailingPE                  float64 `json:"trailingPE"`
	TrailingAnnualDividendYield float64 `json:"trailingAnnualDividendYield"`
	Beta                        float64 `json:"beta"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooChartResponse mirrors the /v8/finance/chart payload.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

// yahooSummaryResponse mirrors the /v10/finance/quoteSummary payload.
type yahooSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector             string `json:"sector"`
				Industry           string `json:"industry"`
				Website            string `json:"website"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			Price struct {
				ShortName string `json:"shortName"`
				LongName  string `json:"longName"`
				MarketCap struct {
					Raw float64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

// Quote returns the current quote snapshot for a symbol.
func (c *YahooClient) Quote(ctx context.Context, symbol string) (*QuoteSnapshot, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))

	var resp yahooQuoteResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote %s: provider error: %s", symbol, resp.QuoteResponse.Error.Description)
	}

	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote %s: no data", symbol)
	}

	q := resp.QuoteResponse.Result[0]

	name := q.LongName
	if name == "" {
		name = q.ShortName
	}

	snapshot := &QuoteSnapshot{
		Symbol:           q.Symbol,
		CompanyName:      name,
		CurrentPrice:     q.RegularMarketPrice,
		ChangePercent:    q.RegularMarketChangePercent,
		DayHigh:          q.RegularMarketDayHigh,
		DayLow:           q.RegularMarketDayLow,
		Volume:           q.RegularMarketVolume,
		FiftyTwoWeekHigh: q.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  q.FiftyTwoWeekLow,
		PERatio:          q.TrailingPE,
		Beta:             q.Beta,
	}

	// The provider reports yield as a fraction. Scale to a percentage only
	// when present; zero stays zero, so 0% and "unknown" are conflated.
	if q.TrailingAnnualDividendYield != 0 {
		snapshot.DividendYield = q.TrailingAnnualDividendYield * 100
	}

	return snapshot, nil
}

// CompanyInfo returns company metadata for a symbol.
func (c *YahooClient) CompanyInfo(ctx context.Context, symbol string) (*CompanyInfo, error) {
	endpoint := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=assetProfile,price",
		c.baseURL, url.PathEscape(symbol),
	)

	var resp yahooSummaryResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("company info %s: provider error: %s", symbol, resp.QuoteSummary.Error.Description)
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("company info %s: no data", symbol)
	}

	r := resp.QuoteSummary.Result[0]

	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	return &CompanyInfo{
		Symbol:      symbol,
		Name:        name,
		Sector:      r.AssetProfile.Sector,
		Industry:    r.AssetProfile.Industry,
		Website:     r.AssetProfile.Website,
		Description: r.AssetProfile.LongBusinessSummary,
		MarketCap:   r.Price.MarketCap.Raw,
	}, nil
}

// History returns historical price bars for a symbol.
func (c *YahooClient) History(ctx context.Context, symbol, period, interval string) ([]Bar, error) {
	if period == "" {
		period = "1mo"
	}
	if interval == "" {
		interval = "1d"
	}

	endpoint := fmt.Sprintf(
		"%s/v8/finance/chart/%s?range=%s&interval=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(period), url.QueryEscape(interval),
	)

	var resp yahooChartResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("history %s: provider error: %s", symbol, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("history %s: no data", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("history %s: no data", symbol)
	}

	quote := result.Indicators.Quote[0]
	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar := Bar{Timestamp: time.Unix(ts, 0).UTC()}
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		if i < len(quote.Close) {
			bar.Close = quote.Close[i]
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// getJSON performs a throttled GET request and decodes the JSON response.
func (c *YahooClient) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stockfolio/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return types.NewServiceError(
			types.CodeUpstreamError,
			fmt.Sprintf("market data provider returned status %d", resp.StatusCode),
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
