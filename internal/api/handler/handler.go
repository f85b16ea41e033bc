// Package handler contains the gin handlers for the task and account API.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/database"
)

type Handler struct {
	db database.DB
}

func New(db database.DB) *Handler {
	return &Handler{db: db}
}

// Health reports liveness. It is the only route without authentication
// besides register and login.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// idParam parses the numeric id path parameter. A non-numeric id can never
// name an entity, so it reports false and the caller answers 404.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func permissionDenied(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// validationError renders a 400 with a per-field error map.
func validationError(c *gin.Context, errs map[string][]string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}
