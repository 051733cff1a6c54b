// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// WatchlistEntry is one instrument tracked by one user.
// For a given UserID at most one entry exists per Symbol.
type WatchlistEntry struct {
	ID      string    // Opaque identifier assigned by the store
	UserID  string    // Owning user's normalized identifier
	Symbol  string    // Instrument ticker, stored as given
	Company string    // Display name captured when the entry was added
	AddedAt time.Time // Creation time, never updated
}

// WatchlistRow is a WatchlistEntry merged with the latest quote.
// Price fields are nil when the quote could not be fetched.
type WatchlistRow struct {
	WatchlistEntry
	Price         *float64
	Change        *float64
	ChangePercent *float64
}

// HasQuote reports whether a usable price was merged into the row.
func (r WatchlistRow) HasQuote() bool {
	return r.Price != nil
}
