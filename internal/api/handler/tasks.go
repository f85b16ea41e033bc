package handler

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/api/auth"
	"github.com/taskdeck/taskdeck/internal/api/models"
	"github.com/taskdeck/taskdeck/internal/database"
)

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// updateTaskRequest is the PUT payload. A full update requires every
// writable field to be present.
type updateTaskRequest struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
	IsCompleted *bool   `json:"is_completed" binding:"required"`
}

// patchTaskRequest is the PATCH payload. Any subset of writable fields
// is accepted.
type patchTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

// canAccess reports whether the user may read or mutate the task:
// admins always, everyone else only their own tasks.
func canAccess(user *database.User, task *database.Task) bool {
	return user.IsAdmin() || task.CreatedByID == user.ID
}

// ListTasks returns the caller's tasks, or every task for admins,
// ordered by ascending id.
func (h *Handler) ListTasks(c *gin.Context) {
	user := auth.CurrentUser(c)

	var (
		tasks []database.Task
		err   error
	)
	if user.IsAdmin() {
		tasks, err = h.db.ListTasks(c.Request.Context())
	} else {
		tasks, err = h.db.ListTasksByOwner(c.Request.Context(), user.ID)
	}
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, models.ToTasks(tasks))
}

// CreateTask creates a task owned by the caller. Client-supplied owner or
// timestamp values are ignored.
func (h *Handler) CreateTask(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req createTaskRequest
	if errs, ok := bindJSON(c, &req); !ok {
		validationError(c, errs)
		return
	}

	task := &database.Task{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		CreatedByID: user.ID,
	}
	if err := h.db.CreateTask(c.Request.Context(), task); err != nil {
		internalError(c)
		return
	}

	log.Debug("created task", "id", task.ID, "owner", user.Username)
	c.JSON(http.StatusCreated, models.ToTask(task))
}

func (h *Handler) GetTask(c *gin.Context) {
	task, ok := h.taskForRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ToTask(task))
}

// UpdateTask handles PUT: all writable fields must be present.
func (h *Handler) UpdateTask(c *gin.Context) {
	task, ok := h.taskForRequest(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if errs, ok := bindJSON(c, &req); !ok {
		validationError(c, errs)
		return
	}
	if *req.Title == "" {
		validationError(c, map[string][]string{"title": {"this field may not be blank"}})
		return
	}

	task.Title = *req.Title
	task.Description = *req.Description
	task.IsCompleted = *req.IsCompleted
	h.saveTask(c, task)
}

// PatchTask handles PATCH: any subset of writable fields is applied.
func (h *Handler) PatchTask(c *gin.Context) {
	task, ok := h.taskForRequest(c)
	if !ok {
		return
	}

	var req patchTaskRequest
	if errs, ok := bindJSON(c, &req); !ok {
		validationError(c, errs)
		return
	}
	if req.Title != nil && *req.Title == "" {
		validationError(c, map[string][]string{"title": {"this field may not be blank"}})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}
	h.saveTask(c, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	task, ok := h.taskForRequest(c)
	if !ok {
		return
	}

	if err := h.db.DeleteTask(c.Request.Context(), task.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c)
		return
	}

	log.Debug("deleted task", "id", task.ID)
	c.Status(http.StatusNoContent)
}

// taskForRequest loads the task named by the id parameter and enforces the
// ownership rule. Existence is checked first: an absent id is 404 for every
// caller, a foreign id is 403 for non-admins.
func (h *Handler) taskForRequest(c *gin.Context) (*database.Task, bool) {
	id, ok := idParam(c)
	if !ok {
		notFound(c)
		return nil, false
	}

	task, err := h.db.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			notFound(c)
			return nil, false
		}
		internalError(c)
		return nil, false
	}

	if !canAccess(auth.CurrentUser(c), task) {
		permissionDenied(c)
		return nil, false
	}
	return task, true
}

func (h *Handler) saveTask(c *gin.Context, task *database.Task) {
	if err := h.db.UpdateTask(c.Request.Context(), task); err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, models.ToTask(task))
}
