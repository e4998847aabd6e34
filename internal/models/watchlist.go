package models

import (
	"time"
)

// WatchlistEntry represents a symbol a user is watching.
// The (user id, symbol) pair is unique.
type WatchlistEntry struct {
	ID      string    `json:"id" db:"id"`
	UserID  string    `json:"userId" db:"user_id"`
	Symbol  string    `json:"symbol" db:"symbol"`
	AddedAt time.Time `json:"addedAt" db:"added_at"`
}
