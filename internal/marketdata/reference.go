package marketdata

import "strings"

// Listing is a (symbol, name) pair from the static reference list.
type Listing struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// referenceList is the fixed set of searchable listings. Symbols are stored
// uppercase.
var referenceList = []Listing{
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "GOOGL", Name: "Alphabet Inc. (Google)"},
	{Symbol: "AMZN", Name: "Amazon.com, Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "META", Name: "Meta Platforms, Inc."},
	{Symbol: "TSLA", Name: "Tesla, Inc."},
	{Symbol: "BRK-B", Name: "Berkshire Hathaway Inc."},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
	{Symbol: "V", Name: "Visa Inc."},
	{Symbol: "JNJ", Name: "Johnson & Johnson"},
	{Symbol: "WMT", Name: "Walmart Inc."},
	{Symbol: "PG", Name: "Procter & Gamble Company"},
	{Symbol: "MA", Name: "Mastercard Incorporated"},
	{Symbol: "HD", Name: "The Home Depot, Inc."},
	{Symbol: "DIS", Name: "The Walt Disney Company"},
	{Symbol: "BAC", Name: "Bank of America Corporation"},
	{Symbol: "XOM", Name: "Exxon Mobil Corporation"},
	{Symbol: "PFE", Name: "Pfizer Inc."},
	{Symbol: "KO", Name: "The Coca-Cola Company"},
	{Symbol: "NFLX", Name: "Netflix, Inc."},
	{Symbol: "INTC", Name: "Intel Corporation"},
	{Symbol: "AMD", Name: "Advanced Micro Devices, Inc."},
	{Symbol: "CRM", Name: "Salesforce, Inc."},
	{Symbol: "ORCL", Name: "Oracle Corporation"},
	{Symbol: "CSCO", Name: "Cisco Systems, Inc."},
	{Symbol: "ADBE", Name: "Adobe Inc."},
	{Symbol: "PYPL", Name: "PayPal Holdings, Inc."},
}

// SearchListings filters the reference list by substring. A listing matches
// when the uppercased query is a substring of the symbol, or the lowercased
// query is a substring of the lowercased name. The symbol comparison is
// case-sensitive against the uppercased query since symbols are stored
// uppercase; the name comparison is case-insensitive.
func SearchListings(query string) []Listing {
	upper := strings.ToUpper(query)
	lower := strings.ToLower(query)

	matches := make([]Listing, 0)
	for _, listing := range referenceList {
		if strings.Contains(listing.Symbol, upper) ||
			strings.Contains(strings.ToLower(listing.Name), lower) {
			matches = append(matches, listing)
		}
	}

	return matches
}

// Recommendation is a static stock suggestion.
type Recommendation struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Reason string `json:"reason"`
}

// recommendations is the fixed set returned by the recommendations endpoint.
var recommendations = []Recommendation{
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Reason: "Consistent revenue growth and strong ecosystem"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Reason: "Cloud segment momentum and diversified business"},
	{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", Reason: "Defensive pick with a long dividend history"},
	{Symbol: "V", Name: "Visa Inc.", Sector: "Financial Services", Reason: "High-margin payments network"},
	{Symbol: "KO", Name: "The Coca-Cola Company", Sector: "Consumer Defensive", Reason: "Stable cash flows and global brand"},
}

// Recommendations returns the static recommendation list.
func Recommendations() []Recommendation {
	out := make([]Recommendation, len(recommendations))
	copy(out, recommendations)
	return out
}
