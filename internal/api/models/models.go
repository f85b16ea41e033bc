// Package models holds the JSON representations served by the API.
package models

import "time"

// User is the public projection of an account. The password hash and
// superuser flag are intentionally absent for regular responses.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AdminUser is the projection served to admins. It additionally exposes
// the superuser flag and the join date.
type AdminUser struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
}

// Task is the JSON shape of a task. created_by and the timestamps are
// server-assigned and ignored on write.
type Task struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsCompleted bool      `json:"is_completed"`
}

// TokenResponse is the success shape of register and login.
type TokenResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
