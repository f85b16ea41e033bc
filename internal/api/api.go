// Package api wires the gin router, auth middleware and handlers together.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/api/auth"
	"github.com/taskdeck/taskdeck/internal/api/handler"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/database"
)

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	db           database.DB
	authProvider *auth.Provider
}

func New(cfg *config.Config, db database.DB, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery(), requestLogger(), gzip.Gzip(gzip.DefaultCompression))

	s := &Server{
		cfg:          cfg,
		ginEngine:    ginEngine,
		db:           db,
		authProvider: auth.New(db),
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	h := handler.New(s.db)

	s.ginEngine.GET("/health", h.Health)

	// Register and login are the only open routes
	authGroup := s.ginEngine.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authProvider.RequireAuth())

	protected.GET("/auth/me", h.Me)

	protected.GET("/tasks", h.ListTasks)
	protected.POST("/tasks", h.CreateTask)
	protected.GET("/tasks/:id", h.GetTask)
	protected.PUT("/tasks/:id", h.UpdateTask)
	protected.PATCH("/tasks/:id", h.PatchTask)
	protected.DELETE("/tasks/:id", h.DeleteTask)

	// Account management routes
	admin := protected.Group("/users")
	admin.Use(s.authProvider.RequireAdmin())
	admin.GET("", h.ListUsers)
	admin.PATCH("/:id", h.UpdateUser)
}

// requestLogger logs each request at debug level. Request bodies are never
// logged, they may contain credentials.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}
