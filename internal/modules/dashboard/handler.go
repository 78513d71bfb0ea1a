package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"drawtrack/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	userID := c.GetInt64("user_id")

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid year")
			return
		}
		year = parsed
	}

	overview, err := h.service.Overview(c.Request.Context(), userID, year)
	if err != nil {
		response.Internal(c, "Failed to fetch dashboard data")
		return
	}

	response.Success(c, http.StatusOK, overview)
}
