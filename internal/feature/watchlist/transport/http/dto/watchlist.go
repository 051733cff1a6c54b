// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import (
	"time"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// ToggleRequest is the body of POST /api/watchlist/toggle.
// Company may be omitted; the server then fills it from the catalog.
type ToggleRequest struct {
	Symbol  string `json:"symbol" form:"symbol"`
	Company string `json:"company" form:"company"`
}

// ToggleResponse is the wire form of usecase.ToggleResult.
type ToggleResponse struct {
	Success bool   `json:"success"`
	Added   *bool  `json:"added,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewToggleResponse converts a usecase result.
func NewToggleResponse(r usecase.ToggleResult) ToggleResponse {
	return ToggleResponse{Success: r.Success, Added: r.Added, Error: r.Error}
}

// Result converts back to the usecase result.
func (r ToggleResponse) Result() usecase.ToggleResult {
	return usecase.ToggleResult{Success: r.Success, Added: r.Added, Error: r.Error}
}

// WatchlistItem is one enriched watchlist row.
type WatchlistItem struct {
	ID            string    `json:"id"`
	Symbol        string    `json:"symbol"`
	Company       string    `json:"company"`
	AddedAt       time.Time `json:"addedAt"`
	Price         *float64  `json:"price,omitempty"`
	Change        *float64  `json:"change,omitempty"`
	ChangePercent *float64  `json:"changePercent,omitempty"`
}

// NewWatchlistItems converts rows, keeping their order.
func NewWatchlistItems(rows []entity.WatchlistRow) []WatchlistItem {
	items := make([]WatchlistItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, WatchlistItem{
			ID:            r.ID,
			Symbol:        r.Symbol,
			Company:       r.Company,
			AddedAt:       r.AddedAt,
			Price:         r.Price,
			Change:        r.Change,
			ChangePercent: r.ChangePercent,
		})
	}
	return items
}

// Row converts back to a domain row.
func (i WatchlistItem) Row() entity.WatchlistRow {
	return entity.WatchlistRow{
		WatchlistEntry: entity.WatchlistEntry{
			ID:      i.ID,
			Symbol:  i.Symbol,
			Company: i.Company,
			AddedAt: i.AddedAt,
		},
		Price:         i.Price,
		Change:        i.Change,
		ChangePercent: i.ChangePercent,
	}
}

// MembershipResponse is the body of GET /api/watchlist/symbols/:symbol.
type MembershipResponse struct {
	Symbol      string `json:"symbol"`
	Watchlisted bool   `json:"watchlisted"`
}

// SymbolsResponse is the body of GET /api/watchlist/symbols.
type SymbolsResponse struct {
	Symbols []string `json:"symbols"`
}
