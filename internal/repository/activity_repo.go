package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"drawtrack/internal/domain"
)

// ActivityRepository maintains the daily_activity aggregate. The table is
// a materialized view over drawings: Recalculate is the sole mutation
// path, always recounting live rows instead of applying deltas, so a crash
// mid-upload can never leave a stale count behind.
type ActivityRepository interface {
	Recalculate(ctx context.Context, userID int64, date string) (*domain.DailyActivity, error)
	Year(ctx context.Context, userID int64, year int) ([]domain.DailyActivity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Recalculate(ctx context.Context, userID int64, date string) (*domain.DailyActivity, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Drawing{}).
		Where("user_id = ? AND submission_date = ? AND is_deleted = ?", userID, date, false).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	activity := &domain.DailyActivity{
		UserID:          userID,
		ActivityDate:    date,
		SubmissionCount: int(count),
		UpdatedAt:       time.Now(),
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"submission_count", "updated_at"}),
		}).
		Create(activity).Error
	if err != nil {
		return nil, err
	}
	return activity, nil
}

func (r *activityRepository) Year(ctx context.Context, userID int64, year int) ([]domain.DailyActivity, error) {
	var rows []domain.DailyActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_date LIKE ?", userID, fmt.Sprintf("%04d-%%", year)).
		Order("activity_date ASC").
		Find(&rows).Error
	return rows, err
}
