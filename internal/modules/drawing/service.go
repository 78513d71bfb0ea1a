package drawing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"drawtrack/internal/domain"
	"drawtrack/internal/images"
	"drawtrack/internal/repository"
	"drawtrack/internal/storage"
)

// Service orchestrates drawing ingestion and lifecycle: derivative
// generation, dual artifact writes, record insertion and the daily
// activity aggregate that hangs off every mutation.
type Service struct {
	drawings  repository.DrawingRepository
	favorites repository.FavoriteRepository
	activity  repository.ActivityRepository
	store     *storage.Store
}

func NewService(
	drawings repository.DrawingRepository,
	favorites repository.FavoriteRepository,
	activity repository.ActivityRepository,
	store *storage.Store,
) *Service {
	return &Service{
		drawings:  drawings,
		favorites: favorites,
		activity:  activity,
		store:     store,
	}
}

// Upload ingests a batch of 1..N images with best-effort semantics: each
// file is processed independently, failures are reported next to the
// successes and never roll earlier commits back. By the time Upload
// returns, daily_activity reflects every committed drawing.
func (s *Service) Upload(ctx context.Context, userID int64, title, description string, files []UploadFile) ([]*domain.Drawing, []UploadFailure, error) {
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}

	created := make([]*domain.Drawing, 0, len(files))
	var failures []UploadFailure
	touchedDates := map[string]bool{}

	for _, file := range files {
		d, err := s.ingestOne(ctx, userID, title, description, file)
		if err != nil {
			log.Printf("upload_file_failed file=%s err=%v", file.Name, err)
			failures = append(failures, UploadFailure{FileName: file.Name, Reason: err.Error()})
			continue
		}
		created = append(created, d)
		touchedDates[d.SubmissionDate] = true
	}

	// One recount per affected date, after all inserts are visible.
	for date := range touchedDates {
		if _, err := s.activity.Recalculate(ctx, userID, date); err != nil {
			log.Printf("activity_recalculate_failed user_id=%d date=%s err=%v", userID, date, err)
		}
	}

	return created, failures, nil
}

func (s *Service) ingestOne(ctx context.Context, userID int64, title, description string, file UploadFile) (*domain.Drawing, error) {
	derivative, err := images.Process(file.Data, file.MimeType)
	if err != nil {
		return nil, err
	}

	base := artifactBaseName()
	ext := strings.ToLower(filepath.Ext(file.Name))
	if ext == "" {
		ext = extForMime(file.MimeType)
	}
	originalName := base + "_original" + ext
	displayName := base + ".webp"

	// Two file writes then one insert; there is no cross-store transaction.
	// A failure between the steps leaves orphans behind, which is accepted:
	// the database row is the authoritative existence record.
	originalPath, err := s.store.Save(originalName, file.Data)
	if err != nil {
		return nil, err
	}
	displayPath, err := s.store.Save(displayName, derivative.WebP)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if title == "" {
		title = "Drawing " + now.Format("1/2/2006")
	}
	originalSize := int64(len(file.Data))

	d := &domain.Drawing{
		UserID:           userID,
		Title:            title,
		Description:      description,
		FilePath:         displayPath,
		FileName:         displayName,
		FileSize:         int64(len(derivative.WebP)),
		OriginalFilePath: &originalPath,
		OriginalFileName: &originalName,
		OriginalFileSize: &originalSize,
		MimeType:         file.MimeType,
		Width:            derivative.Width,
		Height:           derivative.Height,
		SubmissionDate:   domain.DateOf(now),
		CreatedAt:        now,
	}
	if err := s.drawings.Insert(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save drawing record: %w", err)
	}
	return d, nil
}

// Delete soft-deletes a drawing, then cascades: favorite removal, an
// aggregate recount for the drawing's date, and best-effort artifact
// removal. The flag flip is never rolled back when a later step fails;
// cleanup problems are logged, not surfaced.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	d, err := s.drawings.SoftDelete(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.favorites.RemoveForDrawing(ctx, userID, id); err != nil {
		log.Printf("favorite_cascade_failed drawing_id=%d err=%v", id, err)
	}
	if _, err := s.activity.Recalculate(ctx, userID, d.SubmissionDate); err != nil {
		log.Printf("activity_recalculate_failed user_id=%d date=%s err=%v", userID, d.SubmissionDate, err)
	}

	s.store.Remove(d.FilePath)
	if d.OriginalFilePath != nil {
		s.store.Remove(*d.OriginalFilePath)
	}
	return nil
}

func (s *Service) Gallery(ctx context.Context, userID int64, page, pageSize int) ([]repository.DrawingWithFavorite, bool, error) {
	return s.drawings.ListPage(ctx, userID, page, pageSize)
}

// ToggleFavorite flips the favorite state of a live drawing and reports
// the resulting state.
func (s *Service) ToggleFavorite(ctx context.Context, userID, id int64) (bool, error) {
	if _, err := s.drawings.GetByID(ctx, userID, id); err != nil {
		return false, err
	}
	return s.favorites.Toggle(ctx, userID, id)
}

func (s *Service) Favorites(ctx context.Context, userID int64) ([]repository.FavoritedDrawing, error) {
	return s.favorites.ListWithDrawings(ctx, userID)
}

// Download resolves the file to serve for a drawing: the original when its
// record fields are set and the file survives, otherwise the display
// derivative. The download name is the sanitized title plus the matching
// suffix; legacy records without a title fall back to the stored name.
func (s *Service) Download(ctx context.Context, userID, id int64) (absPath, downloadName string, err error) {
	d, err := s.drawings.GetByID(ctx, userID, id)
	if err != nil {
		return "", "", err
	}

	if d.OriginalFilePath != nil && d.OriginalFileName != nil && s.store.Exists(*d.OriginalFilePath) {
		name := *d.OriginalFileName
		if d.Title != "" {
			name = sanitizeTitle(d.Title) + "_original" + filepath.Ext(*d.OriginalFileName)
		}
		return s.store.Abs(*d.OriginalFilePath), name, nil
	}

	if s.store.Exists(d.FilePath) {
		name := d.FileName
		if d.Title != "" {
			name = sanitizeTitle(d.Title) + ".webp"
		}
		return s.store.Abs(d.FilePath), name, nil
	}

	return "", "", ErrArtifactMissing
}

// artifactBaseName builds the collision-resistant {timestamp}_{random}
// prefix shared by both artifacts of one drawing.
func artifactBaseName() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), random)
}

func sanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, title)
}

func extForMime(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// IsNotFound reports whether err is any of the not-found conditions the
// handlers answer with a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrArtifactMissing)
}
