// Package usecase implements the instrument catalog operations.
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"watchlist_backend/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	// FindByCode returns ErrSymbolNotFound when no active symbol has the code.
	FindByCode(ctx context.Context, code string) (*entity.Symbol, error)
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols in display order.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// CompanyName returns the catalog name of code, or code itself when the
// catalog does not know it or cannot be read.
func (u *SymbolUsecase) CompanyName(ctx context.Context, code string) string {
	s, err := u.repo.FindByCode(ctx, code)
	switch {
	case err == nil && s.Name != "":
		return s.Name
	case err == nil, errors.Is(err, ErrSymbolNotFound):
		return code
	default:
		slog.Warn("company lookup failed", "symbol", code, "error", err)
		return code
	}
}
