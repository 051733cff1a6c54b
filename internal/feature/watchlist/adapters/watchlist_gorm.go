// Package adapters provides the gorm-backed repositories of the watchlist feature.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// WatchlistEntryModel is the persisted form of entity.WatchlistEntry.
// The composite unique index keeps at most one row per (user_id, symbol).
type WatchlistEntryModel struct {
	ID      string    `gorm:"primaryKey;size:36"`
	UserID  string    `gorm:"size:64;not null;uniqueIndex:watchlist_user_symbol,priority:1"`
	Symbol  string    `gorm:"size:32;not null;uniqueIndex:watchlist_user_symbol,priority:2"`
	Company string    `gorm:"size:255;not null"`
	AddedAt time.Time `gorm:"not null;index"`
}

// TableName pins the table name used by gorm.
func (WatchlistEntryModel) TableName() string {
	return "watchlist_entries"
}

func (m WatchlistEntryModel) toEntity() entity.WatchlistEntry {
	return entity.WatchlistEntry{
		ID:      m.ID,
		UserID:  m.UserID,
		Symbol:  m.Symbol,
		Company: m.Company,
		AddedAt: m.AddedAt,
	}
}

// watchlistGorm implements usecase.WatchlistRepository with gorm.
type watchlistGorm struct {
	db *gorm.DB
}

// Compile-time check that watchlistGorm implements usecase.WatchlistRepository.
var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistGorm creates a repository on the given connection.
// The connection should be opened with gorm.Config{TranslateError: true} so duplicate
// keys surface as gorm.ErrDuplicatedKey on every driver.
func NewWatchlistGorm(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Create inserts the entry and assigns it a fresh UUID.
// A duplicate (user_id, symbol) pair yields usecase.ErrEntryAlreadyExists.
func (r *watchlistGorm) Create(ctx context.Context, e *entity.WatchlistEntry) error {
	m := WatchlistEntryModel{
		ID:      uuid.NewString(),
		UserID:  e.UserID,
		Symbol:  e.Symbol,
		Company: e.Company,
		AddedAt: e.AddedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create watchlist entry %s: %w", e.Symbol, usecase.ErrEntryAlreadyExists)
		}
		return fmt.Errorf("create watchlist entry %s: %w", e.Symbol, err)
	}
	e.ID = m.ID
	return nil
}

// FindByUserAndSymbol returns usecase.ErrEntryNotFound when the pair is absent.
func (r *watchlistGorm) FindByUserAndSymbol(ctx context.Context, userID, symbol string) (*entity.WatchlistEntry, error) {
	var m WatchlistEntryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find watchlist entry %s: %w", symbol, err)
	}
	e := m.toEntity()
	return &e, nil
}

func (r *watchlistGorm) CountByUserAndSymbol(ctx context.Context, userID, symbol string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&WatchlistEntryModel{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count watchlist entry %s: %w", symbol, err)
	}
	return n, nil
}

// DeleteByID scopes the delete to userID so one user can never remove another's entry.
func (r *watchlistGorm) DeleteByID(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&WatchlistEntryModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete watchlist entry %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *watchlistGorm) ListSymbols(ctx context.Context, userID string) ([]string, error) {
	var symbols []string
	err := r.db.WithContext(ctx).
		Model(&WatchlistEntryModel{}).
		Where("user_id = ?", userID).
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist symbols: %w", err)
	}
	return symbols, nil
}

// ListByUser orders by added_at descending, ties broken by id for a stable order.
func (r *watchlistGorm) ListByUser(ctx context.Context, userID string) ([]entity.WatchlistEntry, error) {
	var models []WatchlistEntryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist entries: %w", err)
	}

	entries := make([]entity.WatchlistEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, m.toEntity())
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
