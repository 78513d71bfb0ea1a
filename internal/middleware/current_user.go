package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"drawtrack/internal/repository"
)

// CurrentUser resolves the single-tenant default user and places its id in
// the request context, standing in for authentication. Handlers read
// "user_id" without caring how it was resolved.
func CurrentUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := users.FirstID(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to resolve current user",
				},
			})
			return
		}

		c.Set("user_id", id)
		c.Next()
	}
}
