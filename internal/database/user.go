package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Roles a user can hold. The role gates cross-tenant visibility:
// admins see and manage every task, regular users only their own.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the database.
// The password is only ever stored as a bcrypt hash.
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
}

// BeforeSave keeps the role consistent with the superuser flag: a superuser
// is always an admin, no matter what the caller set.
func (u *User) BeforeSave(*gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.IsSuperuser {
		u.Role = RoleAdmin
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetPassword hashes the plaintext password and stores the hash on the user.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (c *Client) CreateUser(ctx context.Context, user *User) error {
	// Pre-check both unique columns so callers get a field-level error.
	// The unique indexes remain the backstop for concurrent registrations.
	var count int64
	if err := c.db.WithContext(ctx).Model(&User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		log.Error("failed to check username", "error", err)
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	if err := c.db.WithContext(ctx).Model(&User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		log.Error("failed to check email", "error", err)
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Error("failed to create user", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by username", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		log.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Error("failed to update user", "error", err)
		return err
	}
	return nil
}
