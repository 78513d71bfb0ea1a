package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"drawtrack/internal/domain"
	"drawtrack/internal/repository"

	_ "modernc.org/sqlite"
)

func setupService(t *testing.T) (*Service, repository.DrawingRepository, repository.ActivityRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:dashboard_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Drawing{}, &domain.DailyActivity{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	drawings := repository.NewDrawingRepository(db)
	activity := repository.NewActivityRepository(db)
	return NewService(drawings, activity), drawings, activity
}

func addDrawing(t *testing.T, drawings repository.DrawingRepository, userID int64, at time.Time) {
	t.Helper()
	d := &domain.Drawing{
		UserID:         userID,
		Title:          "d",
		FilePath:       "/uploads/d.webp",
		FileName:       "d.webp",
		MimeType:       "image/png",
		SubmissionDate: domain.DateOf(at),
		CreatedAt:      at,
	}
	if err := drawings.Insert(context.Background(), d); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
}

func TestOverviewBucketsIntensity(t *testing.T) {
	svc, drawings, activity := setupService(t)
	ctx := context.Background()

	days := map[time.Time]int{
		time.Date(2025, 2, 1, 10, 0, 0, 0, time.Local): 1,
		time.Date(2025, 2, 2, 10, 0, 0, 0, time.Local): 2,
		time.Date(2025, 2, 3, 10, 0, 0, 0, time.Local): 5,
	}
	for day, n := range days {
		for i := 0; i < n; i++ {
			addDrawing(t, drawings, 1, day)
		}
		if _, err := activity.Recalculate(ctx, 1, domain.DateOf(day)); err != nil {
			t.Fatalf("Recalculate returned error: %v", err)
		}
	}

	overview, err := svc.Overview(ctx, 1, 2025)
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if overview.Year != 2025 {
		t.Fatalf("expected year 2025, got %d", overview.Year)
	}
	if overview.TotalSubmissions != 8 {
		t.Fatalf("expected 8 total submissions, got %d", overview.TotalSubmissions)
	}
	if len(overview.Activity) != 3 {
		t.Fatalf("expected 3 activity days, got %d", len(overview.Activity))
	}

	wantIntensity := map[string]int{
		"2025-02-01": 1,
		"2025-02-02": 2,
		"2025-02-03": 3,
	}
	for _, day := range overview.Activity {
		if day.Intensity != wantIntensity[day.Date] {
			t.Fatalf("date %s: expected intensity %d, got %d", day.Date, wantIntensity[day.Date], day.Intensity)
		}
	}
}

func TestOverviewRecentsAreCappedAndNewestFirst(t *testing.T) {
	svc, drawings, _ := setupService(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		addDrawing(t, drawings, 1, base.Add(time.Duration(i)*time.Minute))
	}

	overview, err := svc.Overview(ctx, 1, time.Now().Year())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if len(overview.RecentSubmissions) != 5 {
		t.Fatalf("expected 5 recents, got %d", len(overview.RecentSubmissions))
	}
	for i := 1; i < len(overview.RecentSubmissions); i++ {
		if overview.RecentSubmissions[i-1].CreatedAt.Before(overview.RecentSubmissions[i].CreatedAt) {
			t.Fatal("expected recents ordered newest first")
		}
	}
}

func TestOverviewEmptyYear(t *testing.T) {
	svc, _, _ := setupService(t)

	overview, err := svc.Overview(context.Background(), 1, 1999)
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if len(overview.Activity) != 0 {
		t.Fatalf("expected no activity, got %d", len(overview.Activity))
	}
	if overview.TotalSubmissions != 0 {
		t.Fatalf("expected 0 total, got %d", overview.TotalSubmissions)
	}
	if overview.RecentSubmissions == nil {
		t.Fatal("expected empty, non-nil recents")
	}
}
