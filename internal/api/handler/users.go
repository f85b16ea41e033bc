package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/api/models"
	"github.com/taskdeck/taskdeck/internal/database"
)

type updateUserRequest struct {
	Role        *string `json:"role" binding:"omitempty,oneof=user admin"`
	IsSuperuser *bool   `json:"is_superuser"`
}

// ListUsers returns every account. Admin only; the route group enforces it.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, models.ToAdminUsers(users))
}

// UpdateUser changes an account's role or superuser flag. Setting the
// superuser flag forces the admin role on the same save.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return
	}

	var req updateUserRequest
	if errs, ok := bindJSON(c, &req); !ok {
		validationError(c, errs)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c)
		return
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsSuperuser != nil {
		user.IsSuperuser = *req.IsSuperuser
	}

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		internalError(c)
		return
	}

	log.Info("updated user", "username", user.Username, "role", user.Role)
	c.JSON(http.StatusOK, models.ToAdminUser(user))
}
