package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/busla/summerhouse-sub003/internal/model"
)

// handleError writes the status matching err. Unknown errors are attached to
// the context for the logging middleware and reported as 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, model.ErrSessionExpired):
		c.JSON(http.StatusGone, gin.H{"error": "authorization session expired"})
	case errors.Is(err, model.ErrSessionCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "authorization session already completed"})
	case errors.Is(err, model.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
