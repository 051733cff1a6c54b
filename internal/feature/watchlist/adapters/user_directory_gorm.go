package adapters

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
	"watchlist_backend/internal/feature/watchlist/usecase"
)

// userRecord is the read-only projection of the users table owned by the auth feature.
type userRecord struct {
	ID         uint
	ExternalID string
	Email      string
}

func (userRecord) TableName() string {
	return "users"
}

// toUserRef is the single place that decides which user column identifies
// watchlist ownership: the identity provider's external_id when present,
// the primary key otherwise.
func toUserRef(u userRecord) entity.UserRef {
	if u.ExternalID != "" {
		return entity.UserRef{Identifier: u.ExternalID}
	}
	if u.ID == 0 {
		return entity.UserRef{}
	}
	return entity.UserRef{Identifier: strconv.FormatUint(uint64(u.ID), 10)}
}

// userDirectoryGorm implements usecase.UserDirectory on the users table.
type userDirectoryGorm struct {
	db *gorm.DB
}

var _ usecase.UserDirectory = (*userDirectoryGorm)(nil)

func NewUserDirectoryGorm(db *gorm.DB) *userDirectoryGorm {
	return &userDirectoryGorm{db: db}
}

// FindByEmail returns usecase.ErrUserNotFound when no user has the email.
func (r *userDirectoryGorm) FindByEmail(ctx context.Context, email string) (entity.UserRef, error) {
	var u userRecord
	err := r.db.WithContext(ctx).
		Select("id", "external_id", "email").
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.UserRef{}, usecase.ErrUserNotFound
		}
		return entity.UserRef{}, fmt.Errorf("find user by email: %w", err)
	}
	return toUserRef(u), nil
}
