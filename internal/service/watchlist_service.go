package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// WatchlistRepository interface for watchlist data operations
type WatchlistRepository interface {
	Add(ctx context.Context, entry *models.WatchlistEntry) error
	ListByUser(ctx context.Context, userID string) ([]*models.WatchlistEntry, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) error
}

// WatchlistService handles watchlist management and enrichment.
type WatchlistService struct {
	watchlistRepo WatchlistRepository
	provider      marketdata.Provider
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(watchlistRepo WatchlistRepository, provider marketdata.Provider) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		provider:      provider,
	}
}

// List returns the user's watchlist enriched with current market data.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]WatchlistEntryView, error) {
	entries, err := s.watchlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	return EnrichWatchlist(ctx, s.provider, entries), nil
}

// Add adds a symbol to the user's watchlist. A duplicate (user, symbol) pair
// surfaces as a CONFLICT service error from the repository.
func (s *WatchlistService) Add(ctx context.Context, userID, symbol string) (*models.WatchlistEntry, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, types.NewServiceError(types.CodeInvalidInput, "symbol is required")
	}

	entry := &models.WatchlistEntry{
		UserID: userID,
		Symbol: symbol,
	}

	if err := s.watchlistRepo.Add(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// Remove removes an entry from the user's watchlist, verifying ownership.
func (s *WatchlistService) Remove(ctx context.Context, userID, entryID string) error {
	if entryID == "" {
		return types.NewServiceError(types.CodeInvalidInput, "entry id is required")
	}

	return s.watchlistRepo.DeleteByIDAndUser(ctx, entryID, userID)
}
