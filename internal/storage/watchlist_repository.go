package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockfolio/stockfolio/internal/models"
	"github.com/stockfolio/stockfolio/internal/types"
)

// WatchlistRepository handles watchlist entry persistence
type WatchlistRepository struct {
	db *PostgresDB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *PostgresDB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add inserts a watchlist entry. The (user_id, symbol) pair is unique; a
// duplicate surfaces as a CONFLICT service error.
func (r *WatchlistRepository) Add(ctx context.Context, entry *models.WatchlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.AddedAt = time.Now()

	query := `
		INSERT INTO watchlists (id, user_id, symbol, added_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool().Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Symbol,
		entry.AddedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.NewServiceError(types.CodeConflict, fmt.Sprintf("symbol already in watchlist: %s", entry.Symbol))
		}
		return fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	return nil
}

// ListByUser retrieves all watchlist entries for a user
func (r *WatchlistRepository) ListByUser(ctx context.Context, userID string) ([]*models.WatchlistEntry, error) {
	query := `
		SELECT id, user_id, symbol, added_at
		FROM watchlists
		WHERE user_id = $1
		ORDER BY added_at
	`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	var entries []*models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Symbol, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist: %w", err)
	}

	return entries, nil
}

// DeleteByIDAndUser deletes an entry, verifying ownership. An entry owned by
// another user is reported as not found.
func (r *WatchlistRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) error {
	query := `DELETE FROM watchlists WHERE id = $1 AND user_id = $2`

	result, err := r.db.Pool().Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return types.NewServiceError(types.CodeNotFound, fmt.Sprintf("watchlist entry not found: %s", id))
	}

	return nil
}
