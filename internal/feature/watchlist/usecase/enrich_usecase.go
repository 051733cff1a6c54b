package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// DefaultQuoteConcurrency bounds the number of in-flight quote requests per Enrich call.
const DefaultQuoteConcurrency = 4

// QuoteSource provides the latest quote for a symbol.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// EnrichUsecase attaches live quotes to watchlist entries.
type EnrichUsecase struct {
	quotes      QuoteSource
	concurrency int
}

// NewEnrichUsecase creates an EnrichUsecase. A non-positive concurrency falls back to DefaultQuoteConcurrency.
func NewEnrichUsecase(quotes QuoteSource, concurrency int) *EnrichUsecase {
	if concurrency <= 0 {
		concurrency = DefaultQuoteConcurrency
	}
	return &EnrichUsecase{quotes: quotes, concurrency: concurrency}
}

// Enrich fetches a quote for every entry and returns one row per entry in input order.
// A failed fetch leaves the row's quote fields nil and never fails the batch.
func (u *EnrichUsecase) Enrich(ctx context.Context, entries []entity.WatchlistEntry) []entity.WatchlistRow {
	rows := make([]entity.WatchlistRow, len(entries))
	if len(entries) == 0 {
		return rows
	}

	var g errgroup.Group
	g.SetLimit(u.concurrency)

	for i, entry := range entries {
		rows[i] = entity.WatchlistRow{WatchlistEntry: entry}

		g.Go(func() error {
			q, err := u.quotes.GetQuote(ctx, entry.Symbol)
			if err != nil {
				slog.Warn("quote fetch failed", "symbol", entry.Symbol, "error", err)
				return nil
			}
			rows[i].Price = &q.Price
			rows[i].Change = &q.Change
			rows[i].ChangePercent = &q.ChangePercent
			return nil
		})
	}

	// Goroutines never return an error.
	_ = g.Wait()
	return rows
}
