package models

import (
	"github.com/samber/lo"
	"github.com/taskdeck/taskdeck/internal/database"
)

// ToUser converts a database.User to its public projection.
func ToUser(u *database.User) User {
	return User{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// ToAdminUser converts a database.User to its admin projection.
func ToAdminUser(u *database.User) AdminUser {
	return AdminUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.CreatedAt,
	}
}

// ToAdminUsers converts a slice of database.User to admin projections.
func ToAdminUsers(users []database.User) []AdminUser {
	return lo.Map(users, func(u database.User, _ int) AdminUser {
		return ToAdminUser(&u)
	})
}

// ToTask converts a database.Task to its JSON shape.
func ToTask(t *database.Task) Task {
	return Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedByID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		IsCompleted: t.IsCompleted,
	}
}

// ToTasks converts a slice of database.Task to JSON shapes.
func ToTasks(tasks []database.Task) []Task {
	return lo.Map(tasks, func(t database.Task, _ int) Task {
		return ToTask(&t)
	})
}
