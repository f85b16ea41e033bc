package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Task represents a task owned by a user. The owner is set once at creation
// and never changes afterwards.
type Task struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	IsCompleted bool `gorm:"not null;default:false"`
	CreatedByID uint `gorm:"index;not null"`
	CreatedBy   User
}

func (c *Client) CreateTask(ctx context.Context, task *Task) error {
	if err := c.db.WithContext(ctx).Create(task).Error; err != nil {
		log.Error("failed to create task", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetTaskByID(ctx context.Context, id uint) (*Task, error) {
	var task Task
	if err := c.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get task by ID", "error", err)
		return nil, err
	}
	return &task, nil
}

// ListTasks returns every task, ordered by ascending id.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error; err != nil {
		log.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

// ListTasksByOwner returns the tasks owned by the given user, ordered by
// ascending id.
func (c *Client) ListTasksByOwner(ctx context.Context, userID uint) ([]Task, error) {
	var tasks []Task
	if err := c.db.WithContext(ctx).Where("created_by_id = ?", userID).Order("id ASC").Find(&tasks).Error; err != nil {
		log.Error("failed to list tasks by owner", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (c *Client) UpdateTask(ctx context.Context, task *Task) error {
	if err := c.db.WithContext(ctx).Save(task).Error; err != nil {
		log.Error("failed to update task", "error", err)
		return err
	}
	return nil
}

// DeleteTask removes a task by id. Deleting an id that doesn't exist
// returns ErrNotFound, never silent success.
func (c *Client) DeleteTask(ctx context.Context, id uint) error {
	res := c.db.WithContext(ctx).Delete(&Task{}, id)
	if res.Error != nil {
		log.Error("failed to delete task", "error", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
