package drawing

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"drawtrack/internal/domain"
	"drawtrack/internal/images"
	"drawtrack/internal/pkg/response"
	"drawtrack/internal/repository"
)

const (
	// MaxFileSize caps one uploaded image.
	MaxFileSize = 10 * 1024 * 1024
	// MaxBatchSize caps the number of files per upload request.
	MaxBatchSize = 10

	defaultPageSize = 50
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	drawings := rg.Group("/drawings")
	{
		drawings.POST("/upload", h.Upload)
		drawings.GET("", h.Gallery)
		drawings.DELETE("/:id", h.Delete)
		drawings.POST("/:id/favorite", h.ToggleFavorite)
		drawings.GET("/:id/download", h.Download)
	}
	rg.GET("/favorites", h.Favorites)
}

// Upload accepts up to 10 images in the multipart field "drawings".
// Boundary validation (no files, too many, oversize, bad declared type)
// fails the whole request with 400 before any processing; decode failures
// inside the batch skip only the broken file.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid multipart form")
		return
	}

	fileHeaders := form.File["drawings"]
	if len(fileHeaders) == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "No files uploaded")
		return
	}
	if len(fileHeaders) > MaxBatchSize {
		response.Error(c, http.StatusBadRequest, response.CodeValidation,
			fmt.Sprintf("Too many files. Maximum is %d per upload.", MaxBatchSize))
		return
	}

	files := make([]UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > MaxFileSize {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "File too large. Maximum size is 10MB.")
			return
		}
		mimeType := declaredMimeType(fh)
		if !images.AllowedMimeTypes[mimeType] {
			response.Error(c, http.StatusBadRequest, response.CodeValidation,
				"Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
			return
		}

		data, err := readFile(fh)
		if err != nil {
			response.Internal(c, "Failed to read uploaded file")
			return
		}
		files = append(files, UploadFile{Name: fh.Filename, MimeType: mimeType, Data: data})
	}

	userID := c.GetInt64("user_id")
	title := c.PostForm("title")
	description := c.PostForm("description")

	created, failures, err := h.service.Upload(c.Request.Context(), userID, title, description, files)
	if err != nil {
		response.Internal(c, "Failed to upload drawings")
		return
	}

	response.Success(c, http.StatusOK, UploadResponse{Drawings: created, Errors: failures})
}

func (h *Handler) Gallery(c *gin.Context) {
	userID := c.GetInt64("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultPageSize
	}

	rows, hasMore, err := h.service.Gallery(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Internal(c, "Failed to fetch drawings")
		return
	}

	response.Success(c, http.StatusOK, GalleryResponse{
		GroupedDrawings: groupByMonth(rows),
		Page:            page,
		HasMore:         hasMore,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid drawing id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		if IsNotFound(err) {
			response.NotFound(c, "Drawing not found")
			return
		}
		response.Internal(c, "Failed to delete drawing")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Drawing deleted successfully"})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid drawing id")
		return
	}

	isFavorite, err := h.service.ToggleFavorite(c.Request.Context(), userID, id)
	if err != nil {
		if IsNotFound(err) {
			response.NotFound(c, "Drawing not found")
			return
		}
		response.Internal(c, "Failed to update favorite status")
		return
	}

	response.Success(c, http.StatusOK, ToggleFavoriteResponse{IsFavorite: isFavorite})
}

func (h *Handler) Favorites(c *gin.Context) {
	userID := c.GetInt64("user_id")

	rows, err := h.service.Favorites(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, "Failed to fetch favorite drawings")
		return
	}
	if rows == nil {
		rows = []repository.FavoritedDrawing{}
	}

	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) Download(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid drawing id")
		return
	}

	absPath, downloadName, err := h.service.Download(c.Request.Context(), userID, id)
	if err != nil {
		if IsNotFound(err) {
			response.NotFound(c, "Drawing not found")
			return
		}
		response.Internal(c, "Failed to download drawing")
		return
	}

	c.FileAttachment(absPath, downloadName)
}

func declaredMimeType(fh *multipart.FileHeader) string {
	mimeType := fh.Header.Get("Content-Type")
	return strings.TrimSpace(strings.Split(mimeType, ";")[0])
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// groupByMonth buckets gallery rows under their "YYYY-MM" key, keyed off
// the submission date so grouping and the activity calendar always agree.
func groupByMonth(rows []repository.DrawingWithFavorite) map[string]MonthGroup {
	grouped := make(map[string]MonthGroup)
	for _, row := range rows {
		key := row.SubmissionDate
		if len(key) >= 7 {
			key = key[:7]
		}
		group, ok := grouped[key]
		if !ok {
			group = MonthGroup{MonthName: monthName(row.SubmissionDate)}
		}
		group.Drawings = append(group.Drawings, row)
		grouped[key] = group
	}
	return grouped
}

func monthName(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2006")
}
