package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository abstracts the persistence layer for watchlist entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Create persists a new entry and fills in its ID.
	// It returns ErrEntryAlreadyExists when the (user, symbol) pair is already stored.
	Create(ctx context.Context, entry *entity.WatchlistEntry) error

	// FindByUserAndSymbol returns ErrEntryNotFound when the pair is absent.
	FindByUserAndSymbol(ctx context.Context, userID, symbol string) (*entity.WatchlistEntry, error)

	// CountByUserAndSymbol returns 0 or 1.
	CountByUserAndSymbol(ctx context.Context, userID, symbol string) (int64, error)

	// DeleteByID removes the entry with the given ID owned by userID and
	// returns the number of removed rows.
	DeleteByID(ctx context.Context, userID, id string) (int64, error)

	// ListSymbols returns the symbols of the user's entries in no particular order.
	ListSymbols(ctx context.Context, userID string) ([]string, error)

	// ListByUser returns the user's entries, newest AddedAt first.
	ListByUser(ctx context.Context, userID string) ([]entity.WatchlistEntry, error)
}

// UserDirectory resolves a user's email to the identifier owning watchlist entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserDirectory interface {
	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (entity.UserRef, error)
}

// ToggleResult is the outcome of a Toggle call.
// Added is only set when Success is true; Error is only set when it is false.
type ToggleResult struct {
	Success bool
	Added   *bool
	Error   string
}

func toggled(added bool) ToggleResult {
	return ToggleResult{Success: true, Added: &added}
}

func toggleFailed(msg string) ToggleResult {
	return ToggleResult{Error: msg}
}

// Option configures a WatchlistUsecase.
type Option func(*WatchlistUsecase)

// WithClock overrides the clock used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(u *WatchlistUsecase) {
		u.now = now
	}
}

// WatchlistUsecase implements the watchlist read and toggle operations.
// Reads never fail: an absent user or a store error degrades to an empty
// result. Toggle reports every failure through ToggleResult.
type WatchlistUsecase struct {
	entries WatchlistRepository
	users   UserDirectory
	now     func() time.Time
}

// NewWatchlistUsecase creates a WatchlistUsecase with the given repository and user directory.
func NewWatchlistUsecase(entries WatchlistRepository, users UserDirectory, opts ...Option) *WatchlistUsecase {
	u := &WatchlistUsecase{
		entries: entries,
		users:   users,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ResolveUser looks up the user owning the email.
// An empty email or an unknown user yields ErrUserNotFound; any other error
// comes from the directory itself.
func (u *WatchlistUsecase) ResolveUser(ctx context.Context, email string) (entity.UserRef, error) {
	if email == "" {
		return entity.UserRef{}, ErrUserNotFound
	}
	ref, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return entity.UserRef{}, err
	}
	if ref.IsZero() {
		return entity.UserRef{}, ErrUserNotFound
	}
	return ref, nil
}

// ListSymbols returns the symbols in the user's watchlist.
func (u *WatchlistUsecase) ListSymbols(ctx context.Context, email string) []string {
	ref, err := u.ResolveUser(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return []string{}
	case err != nil:
		slog.Error("list watchlist symbols: user lookup failed", "error", err)
		return []string{}
	}

	symbols, err := u.entries.ListSymbols(ctx, ref.Identifier)
	if err != nil {
		slog.Error("list watchlist symbols failed", "user_id", ref.Identifier, "error", err)
		return []string{}
	}
	if symbols == nil {
		return []string{}
	}
	return symbols
}

// IsWatchlisted reports whether the user tracks the symbol.
// Any failure is reported as false.
func (u *WatchlistUsecase) IsWatchlisted(ctx context.Context, symbol, email string) bool {
	if email == "" || symbol == "" {
		return false
	}

	ref, err := u.ResolveUser(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return false
	case err != nil:
		slog.Error("check watchlist: user lookup failed", "symbol", symbol, "error", err)
		return false
	}

	count, err := u.entries.CountByUserAndSymbol(ctx, ref.Identifier, symbol)
	if err != nil {
		slog.Error("check watchlist failed", "user_id", ref.Identifier, "symbol", symbol, "error", err)
		return false
	}
	return count > 0
}

// Toggle adds the symbol to the user's watchlist when absent and removes it when present.
// Two successful calls in a row restore the original membership.
func (u *WatchlistUsecase) Toggle(ctx context.Context, symbol, company, email string) ToggleResult {
	if email == "" || symbol == "" {
		return toggleFailed(MsgInvalidData)
	}

	ref, err := u.ResolveUser(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return toggleFailed(MsgUserNotFound)
	case err != nil:
		slog.Error("toggle watchlist: user lookup failed", "symbol", symbol, "error", err)
		return toggleFailed(MsgUpdateFailed)
	}

	existing, err := u.entries.FindByUserAndSymbol(ctx, ref.Identifier, symbol)
	switch {
	case err == nil:
		return u.remove(ctx, ref, existing)
	case errors.Is(err, ErrEntryNotFound):
		return u.add(ctx, ref, symbol, company)
	default:
		slog.Error("toggle watchlist: lookup failed", "user_id", ref.Identifier, "symbol", symbol, "error", err)
		return toggleFailed(MsgUpdateFailed)
	}
}

func (u *WatchlistUsecase) add(ctx context.Context, ref entity.UserRef, symbol, company string) ToggleResult {
	entry := &entity.WatchlistEntry{
		UserID:  ref.Identifier,
		Symbol:  symbol,
		Company: company,
		AddedAt: u.now(),
	}

	err := u.entries.Create(ctx, entry)
	switch {
	case err == nil:
		slog.Info("watchlist entry added", "user_id", ref.Identifier, "symbol", symbol)
		return toggled(true)
	case errors.Is(err, ErrEntryAlreadyExists):
		// A concurrent toggle created the pair between our lookup and insert.
		slog.Warn("watchlist entry already present", "user_id", ref.Identifier, "symbol", symbol)
		return toggled(true)
	default:
		slog.Error("toggle watchlist: create failed", "user_id", ref.Identifier, "symbol", symbol, "error", err)
		return toggleFailed(MsgUpdateFailed)
	}
}

func (u *WatchlistUsecase) remove(ctx context.Context, ref entity.UserRef, existing *entity.WatchlistEntry) ToggleResult {
	n, err := u.entries.DeleteByID(ctx, ref.Identifier, existing.ID)
	if err != nil {
		slog.Error("toggle watchlist: delete failed", "user_id", ref.Identifier, "symbol", existing.Symbol, "error", err)
		return toggleFailed(MsgUpdateFailed)
	}
	if n == 0 {
		slog.Warn("watchlist entry already removed", "user_id", ref.Identifier, "symbol", existing.Symbol)
	} else {
		slog.Info("watchlist entry removed", "user_id", ref.Identifier, "symbol", existing.Symbol)
	}
	return toggled(false)
}

// ListEntries returns the user's entries, newest first.
func (u *WatchlistUsecase) ListEntries(ctx context.Context, email string) []entity.WatchlistEntry {
	ref, err := u.ResolveUser(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		return []entity.WatchlistEntry{}
	case err != nil:
		slog.Error("list watchlist: user lookup failed", "error", err)
		return []entity.WatchlistEntry{}
	}

	entries, err := u.entries.ListByUser(ctx, ref.Identifier)
	if err != nil {
		slog.Error("list watchlist failed", "user_id", ref.Identifier, "error", err)
		return []entity.WatchlistEntry{}
	}
	if entries == nil {
		return []entity.WatchlistEntry{}
	}

	slices.SortStableFunc(entries, func(a, b entity.WatchlistEntry) int {
		return b.AddedAt.Compare(a.AddedAt)
	})
	return entries
}
