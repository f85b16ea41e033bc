package database

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// DB defines the persistence operations used by the API layer.
type DB interface {
	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, user *User) error

	// Token operations
	GetOrCreateToken(ctx context.Context, userID uint) (*Token, error)
	GetUserByTokenKey(ctx context.Context, key string) (*User, error)

	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTaskByID(ctx context.Context, id uint) (*Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	ListTasksByOwner(ctx context.Context, userID uint) ([]Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id uint) error
}

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&Token{},
		&Task{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}
