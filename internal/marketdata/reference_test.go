package marketdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchListings_LowercaseQuery(t *testing.T) {
	// "goo" matches GOOGL twice over: the uppercased query is a substring
	// of the symbol, and the lowercased name contains "google". Still one
	// result entry.
	results := SearchListings("goo")

	require.Len(t, results, 1)
	assert.Equal(t, "GOOGL", results[0].Symbol)
	assert.Equal(t, "Alphabet Inc. (Google)", results[0].Name)
}

func TestSearchListings_SymbolSubstring(t *testing.T) {
	results := SearchListings("GOOG")

	require.Len(t, results, 1)
	assert.Equal(t, "GOOGL", results[0].Symbol)
}

func TestSearchListings_NameMatch(t *testing.T) {
	results := SearchListings("alphabet")

	require.Len(t, results, 1)
	assert.Equal(t, "GOOGL", results[0].Symbol)
}

func TestSearchListings_MixedCaseName(t *testing.T) {
	results := SearchListings("ApPlE")

	require.Len(t, results, 1)
	assert.Equal(t, "AAPL", results[0].Symbol)
}

func TestSearchListings_NoMatch(t *testing.T) {
	results := SearchListings("zzzz")

	assert.Empty(t, results)
	assert.NotNil(t, results, "no match should produce an empty slice, not nil")
}

func TestSearchListings_MultipleMatches(t *testing.T) {
	// "co" appears in many company names (Corporation, Company, Coca-Cola)
	results := SearchListings("co")

	assert.Greater(t, len(results), 3)
}

func TestRecommendations_Static(t *testing.T) {
	first := Recommendations()
	require.NotEmpty(t, first)

	// Mutating the returned slice must not affect later calls.
	first[0].Symbol = "MUTATED"

	second := Recommendations()
	assert.NotEqual(t, "MUTATED", second[0].Symbol)
}
