package dashboard

import (
	"context"

	"drawtrack/internal/domain"
	"drawtrack/internal/repository"
)

const recentLimit = 5

// ActivityDay is one calendar cell: the date, its live-submission count
// and a 4-bucket intensity computed at read time, never stored.
type ActivityDay struct {
	Date      string `json:"activity_date"`
	Count     int    `json:"submission_count"`
	Intensity int    `json:"intensity_level"`
}

type Overview struct {
	Activity          []ActivityDay    `json:"activity"`
	TotalSubmissions  int64            `json:"totalSubmissions"`
	RecentSubmissions []domain.Drawing `json:"recentSubmissions"`
	Year              int              `json:"year"`
}

type Service struct {
	drawings repository.DrawingRepository
	activity repository.ActivityRepository
}

func NewService(drawings repository.DrawingRepository, activity repository.ActivityRepository) *Service {
	return &Service{drawings: drawings, activity: activity}
}

func (s *Service) Overview(ctx context.Context, userID int64, year int) (*Overview, error) {
	rows, err := s.activity.Year(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	activity := make([]ActivityDay, 0, len(rows))
	for _, row := range rows {
		activity = append(activity, ActivityDay{
			Date:      row.ActivityDate,
			Count:     row.SubmissionCount,
			Intensity: intensity(row.SubmissionCount),
		})
	}

	total, err := s.drawings.CountLive(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.drawings.Recent(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []domain.Drawing{}
	}

	return &Overview{
		Activity:          activity,
		TotalSubmissions:  total,
		RecentSubmissions: recent,
		Year:              year,
	}, nil
}

// intensity buckets a day's count for the calendar view: 0, 1, 2, and 3
// for three-or-more.
func intensity(count int) int {
	switch {
	case count <= 0:
		return 0
	case count >= 3:
		return 3
	default:
		return count
	}
}
