package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"drawtrack/internal/domain"
)

// FavoritedDrawing is a favorites-list row: the live drawing plus when it
// was favorited.
type FavoritedDrawing struct {
	domain.Drawing
	AddedAt time.Time `json:"added_at"`
}

type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, drawingID int64) (bool, error)
	ListWithDrawings(ctx context.Context, userID int64) ([]FavoritedDrawing, error)
	RemoveForDrawing(ctx context.Context, userID, drawingID int64) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle removes an existing favorite and reports false, or creates one
// and reports true. A concurrent duplicate insert trips the composite
// unique index and is answered as "already favorited".
func (r *favoriteRepository) Toggle(ctx context.Context, userID, drawingID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND drawing_id = ?", userID, drawingID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	fav := &domain.Favorite{UserID: userID, DrawingID: drawingID}
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		if isUniqueViolation(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *favoriteRepository) ListWithDrawings(ctx context.Context, userID int64) ([]FavoritedDrawing, error) {
	var rows []FavoritedDrawing
	err := r.db.WithContext(ctx).
		Table("drawings").
		Select("drawings.*, favorites.added_at").
		Joins("INNER JOIN favorites ON favorites.drawing_id = drawings.id").
		Where("favorites.user_id = ? AND drawings.is_deleted = ?", userID, false).
		Order("favorites.added_at DESC").
		Scan(&rows).Error
	return rows, err
}

// RemoveForDrawing drops the favorite row when its drawing is deleted, so
// favorites are never orphaned. Absence is fine; there may be nothing to
// remove.
func (r *favoriteRepository) RemoveForDrawing(ctx context.Context, userID, drawingID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND drawing_id = ?", userID, drawingID).
		Delete(&domain.Favorite{}).Error
}
