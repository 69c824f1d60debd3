package model

import "time"

// WatchlistEntry is one tracked symbol.
type WatchlistEntry struct {
	Symbol         string    `json:"symbol"`
	AddedAt        time.Time `json:"added_at"`
	LastAnalyzedAt time.Time `json:"last_analyzed_at,omitempty"`
}

// WatchlistState is the persisted set of tracked symbols.
type WatchlistState struct {
	Entries   []WatchlistEntry `json:"entries"`
	UpdatedAt time.Time        `json:"updated_at"`
}
