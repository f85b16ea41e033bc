// Package auth resolves bearer tokens to users. Every request on a
// protected route is authenticated independently by a token lookup, there
// is no session state.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/database"
)

// userContextKey is the gin context key the authenticated user is stored under.
const userContextKey = "user"

// Provider authenticates requests against the token store.
type Provider struct {
	db database.DB
}

// New creates a new token authentication provider.
func New(db database.DB) *Provider {
	return &Provider{db: db}
}

// RequireAuth returns a middleware that resolves the Authorization header
// to a user and aborts with 401 when the token is missing or unknown.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := tokenFromHeader(c.GetHeader("Authorization"))
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			c.Abort()
			return
		}

		user, err := p.db.GetUserByTokenKey(c.Request.Context(), key)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				log.Error("failed to resolve token", "error", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin returns a middleware that aborts with 403 unless the
// authenticated user holds the admin role. It must run after RequireAuth.
func (p *Provider) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet(userContextKey).(*database.User)
		if !ok || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth.
func CurrentUser(c *gin.Context) *database.User {
	return c.MustGet(userContextKey).(*database.User)
}

// tokenFromHeader extracts the opaque key from an Authorization header.
// Both "Bearer <key>" and the legacy "Token <key>" scheme are accepted.
func tokenFromHeader(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	switch strings.ToLower(parts[0]) {
	case "bearer", "token":
		return parts[1]
	}
	return ""
}
