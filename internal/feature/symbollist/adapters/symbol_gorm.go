// Package adapters provides the gorm-backed symbol catalog.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"watchlist_backend/internal/feature/symbollist/domain/entity"
	"watchlist_backend/internal/feature/symbollist/usecase"
)

// symbolGorm implements usecase.SymbolRepository with gorm.
type symbolGorm struct {
	db *gorm.DB
}

var (
	_ usecase.SymbolRepository = (*symbolGorm)(nil)
	_ usecase.SymbolWriter     = (*symbolGorm)(nil)
)

// NewSymbolRepository creates a symbol repository on the given connection.
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive returns every active symbol ordered by sort_key.
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, fmt.Errorf("list active symbols: %w", err)
	}
	return symbols, nil
}

// FindByCode returns the active symbol with the exact code.
func (r *symbolGorm) FindByCode(ctx context.Context, code string) (*entity.Symbol, error) {
	var s entity.Symbol
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("find symbol %s: %w", code, err)
	}
	return &s, nil
}

// UpsertBatch inserts symbols, updating name, market, activity and order of
// codes that already exist.
func (r *symbolGorm) UpsertBatch(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "market", "is_active", "sort_key", "updated_at"}),
	}).Create(&symbols).Error
	if err != nil {
		return fmt.Errorf("upsert symbols: %w", err)
	}
	return nil
}

// DeactivateExcept marks every symbol whose code is not in codes inactive.
func (r *symbolGorm) DeactivateExcept(ctx context.Context, codes []string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Symbol{}).Where("is_active = ?", true)
	if len(codes) > 0 {
		q = q.Where("code NOT IN ?", codes)
	}
	res := q.Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("deactivate symbols: %w", res.Error)
	}
	return res.RowsAffected, nil
}
