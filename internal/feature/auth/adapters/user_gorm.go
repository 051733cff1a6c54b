// Package adapters provides the gorm-backed user repository of the auth feature.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"watchlist_backend/internal/feature/auth/domain/entity"
	"watchlist_backend/internal/feature/auth/usecase"
)

// userGorm implements usecase.UserRepository with gorm.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements usecase.UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a user repository on the given connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create adds the user. A taken email yields usecase.ErrEmailAlreadyExists.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("create user: nil user")
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
			return usecase.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no user has the email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}
