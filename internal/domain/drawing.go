package domain

import (
	"time"
)

// DateLayout is the calendar-date form used for submission_date and
// activity_date. Keeping it as a plain YYYY-MM-DD string makes the
// date-grouping identical across postgres and sqlite and independent of
// session timezones.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in server-local time. Both the
// submission date of a drawing and the month grouping of the gallery are
// derived from this, so the two views can never disagree.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Drawing is one uploaded submission. Two artifacts back each record: the
// untouched original (nullable for legacy rows) and a size-capped WebP
// derivative used for browsing.
type Drawing struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UserID           int64     `json:"user_id" gorm:"not null;index"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	FilePath         string    `json:"file_path" gorm:"not null"`
	FileName         string    `json:"file_name"`
	FileSize         int64     `json:"file_size"`
	OriginalFilePath *string   `json:"original_file_path"`
	OriginalFileName *string   `json:"original_file_name"`
	OriginalFileSize *int64    `json:"original_file_size"`
	MimeType         string    `json:"mime_type"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	SubmissionDate   string    `json:"submission_date" gorm:"size:10;not null;index"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	IsDeleted        bool      `json:"is_deleted" gorm:"not null;default:false;index"`
}

func (Drawing) TableName() string {
	return "drawings"
}

// Favorite marks one drawing as notable for a user. A drawing can be
// favorited at most once per user; the composite unique index is what the
// toggle relies on under concurrent requests.
type Favorite struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_drawing"`
	DrawingID int64     `json:"drawing_id" gorm:"not null;index;uniqueIndex:idx_user_drawing"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// DailyActivity is the per-user, per-date count of live submissions. It is
// a materialized view over drawings: never incremented in place, only
// recomputed from the live rows for its date.
type DailyActivity struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	UserID          int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_activity_date"`
	ActivityDate    string    `json:"activity_date" gorm:"size:10;not null;uniqueIndex:idx_user_activity_date"`
	SubmissionCount int       `json:"submission_count" gorm:"not null;default:0"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (DailyActivity) TableName() string {
	return "daily_activity"
}
