package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"watchlist_backend/internal/feature/symbollist/domain/entity"
)

// SymbolWriter persists catalog changes.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolWriter interface {
	UpsertBatch(ctx context.Context, symbols []entity.Symbol) error
	DeactivateExcept(ctx context.Context, codes []string) (int64, error)
}

// ImportResult summarizes one catalog import.
type ImportResult struct {
	Imported    int
	Skipped     int
	Deactivated int64
}

// ImportUsecase loads a full instrument list into the catalog.
type ImportUsecase struct {
	repo SymbolWriter
}

// NewImportUsecase creates a new ImportUsecase.
func NewImportUsecase(repo SymbolWriter) *ImportUsecase {
	return &ImportUsecase{repo: repo}
}

// Import replaces the active catalog with symbols. Display order follows the
// input order. Entries without a code or a name are skipped and logged, a
// repeated code keeps its first occurrence. With prune set, symbols missing
// from the input are deactivated, never deleted, so existing watchlist
// entries keep their company names.
func (u *ImportUsecase) Import(ctx context.Context, symbols []entity.Symbol, prune bool) (ImportResult, error) {
	var res ImportResult
	seen := make(map[string]bool, len(symbols))
	batch := make([]entity.Symbol, 0, len(symbols))

	for i, s := range symbols {
		s.Code = strings.TrimSpace(s.Code)
		s.Name = strings.TrimSpace(s.Name)
		if s.Code == "" || s.Name == "" {
			slog.Warn("skipping catalog entry", "index", i, "code", s.Code)
			res.Skipped++
			continue
		}
		if seen[s.Code] {
			slog.Warn("skipping duplicate catalog entry", "index", i, "code", s.Code)
			res.Skipped++
			continue
		}
		seen[s.Code] = true

		s.ID = 0
		s.IsActive = true
		s.SortKey = len(batch)
		batch = append(batch, s)
	}

	if len(batch) == 0 {
		return res, errors.New("no valid symbols to import")
	}
	if err := u.repo.UpsertBatch(ctx, batch); err != nil {
		return res, err
	}
	res.Imported = len(batch)

	if prune {
		codes := make([]string, 0, len(batch))
		for _, s := range batch {
			codes = append(codes, s.Code)
		}
		n, err := u.repo.DeactivateExcept(ctx, codes)
		if err != nil {
			return res, fmt.Errorf("prune catalog: %w", err)
		}
		res.Deactivated = n
	}
	return res, nil
}
