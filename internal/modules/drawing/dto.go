package drawing

import (
	"drawtrack/internal/domain"
	"drawtrack/internal/repository"
)

// UploadFile is one image payload handed to the ingestion service by the
// boundary, already read out of the multipart form.
type UploadFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// UploadFailure reports one file the batch could not ingest. Successes in
// the same batch are committed regardless (best-effort semantics).
type UploadFailure struct {
	FileName string `json:"file_name"`
	Reason   string `json:"reason"`
}

type UploadResponse struct {
	Drawings []*domain.Drawing `json:"drawings"`
	Errors   []UploadFailure   `json:"errors,omitempty"`
}

// MonthGroup buckets gallery drawings under a "YYYY-MM" key.
type MonthGroup struct {
	MonthName string                           `json:"monthName"`
	Drawings  []repository.DrawingWithFavorite `json:"drawings"`
}

type GalleryResponse struct {
	GroupedDrawings map[string]MonthGroup `json:"groupedDrawings"`
	Page            int                   `json:"page"`
	HasMore         bool                  `json:"hasMore"`
}

type ToggleFavoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}
