package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"drawtrack/internal/domain"
)

// DrawingWithFavorite is a gallery row: the drawing plus whether the
// requesting user has favorited it.
type DrawingWithFavorite struct {
	domain.Drawing
	IsFavorite bool `json:"is_favorite"`
}

// DrawingRepository owns CRUD over drawing records and the soft-delete
// contract. Only live (non-deleted) rows are visible through reads.
type DrawingRepository interface {
	Insert(ctx context.Context, d *domain.Drawing) error
	GetByID(ctx context.Context, userID, id int64) (*domain.Drawing, error)
	ListPage(ctx context.Context, userID int64, page, pageSize int) ([]DrawingWithFavorite, bool, error)
	Recent(ctx context.Context, userID int64, limit int) ([]domain.Drawing, error)
	CountLive(ctx context.Context, userID int64) (int64, error)
	SoftDelete(ctx context.Context, userID, id int64) (*domain.Drawing, error)
}

type drawingRepository struct {
	db *gorm.DB
}

func NewDrawingRepository(db *gorm.DB) DrawingRepository {
	return &drawingRepository{db: db}
}

func (r *drawingRepository) Insert(ctx context.Context, d *domain.Drawing) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *drawingRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Drawing, error) {
	var d domain.Drawing
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListPage returns one page of live drawings, newest first. hasMore is the
// cheap approximation: true iff the page came back exactly full.
func (r *drawingRepository) ListPage(ctx context.Context, userID int64, page, pageSize int) ([]DrawingWithFavorite, bool, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows := make([]DrawingWithFavorite, 0, pageSize)
	err := r.db.WithContext(ctx).
		Table("drawings").
		Select("drawings.*, favorites.id IS NOT NULL AS is_favorite").
		Joins("LEFT JOIN favorites ON favorites.drawing_id = drawings.id AND favorites.user_id = ?", userID).
		Where("drawings.user_id = ? AND drawings.is_deleted = ?", userID, false).
		Order("drawings.created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, false, err
	}

	return rows, len(rows) == pageSize, nil
}

func (r *drawingRepository) Recent(ctx context.Context, userID int64, limit int) ([]domain.Drawing, error) {
	var rows []domain.Drawing
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *drawingRepository) CountLive(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Drawing{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Count(&count).Error
	return count, err
}

// SoftDelete flips is_deleted and returns the record as it was, so the
// caller can cascade favorite removal, aggregate recalculation and
// artifact cleanup. The flip is durable even if those later steps fail.
func (r *drawingRepository) SoftDelete(ctx context.Context, userID, id int64) (*domain.Drawing, error) {
	d, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Drawing{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost a race with a concurrent delete.
		return nil, ErrNotFound
	}

	d.IsDeleted = true
	return d, nil
}
