package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"drawtrack/internal/domain"
)

// UserRepository stands in for authentication: the tracker is
// single-tenant, so "current user" is whichever row exists first.
type UserRepository interface {
	EnsureDefault(ctx context.Context) (*domain.User, error)
	FirstID(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// EnsureDefault returns the first user, creating one on an empty database
// so a fresh install works without seeding.
func (r *userRepository) EnsureDefault(ctx context.Context) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Order("id ASC").First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = domain.User{Username: "artist"}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FirstID(ctx context.Context) (int64, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Order("id ASC").First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return u.ID, nil
}
