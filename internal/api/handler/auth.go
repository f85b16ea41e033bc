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

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account and returns its token. Anonymous callers
// always get the "user" role, a client-supplied role is ignored.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if errs, ok := bindJSON(c, &req); !ok {
		validationError(c, errs)
		return
	}

	user := &database.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     database.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Error("failed to hash password", "error", err)
		internalError(c)
		return
	}

	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		switch {
		case errors.Is(err, database.ErrUsernameTaken):
			validationError(c, map[string][]string{"username": {"a user with that username already exists"}})
		case errors.Is(err, database.ErrEmailTaken):
			validationError(c, map[string][]string{"email": {"a user with that email already exists"}})
		default:
			internalError(c)
		}
		return
	}

	token, err := h.db.GetOrCreateToken(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c)
		return
	}

	log.Info("registered user", "username", user.Username)
	c.JSON(http.StatusCreated, models.TokenResponse{
		Token: token.Key,
		User:  models.ToUser(user),
	})
}

// Login authenticates by username and password and returns the stable
// token. The failure message never reveals whether the username exists.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if errs, ok := bindJSON(c, &req); !ok {
		validationError(c, errs)
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Error("failed to look up user", "error", err)
			internalError(c)
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.db.GetOrCreateToken(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		Token: token.Key,
		User:  models.ToUser(user),
	})
}

// Me returns the authenticated user's public projection.
func (h *Handler) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, models.ToUser(user))
}
