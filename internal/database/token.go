package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token is an opaque bearer credential, 1:1 with a user. It is created
// lazily on the first successful register or login and stays stable on
// repeated logins.
type Token struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"uniqueIndex;not null"`
}

// GetOrCreateToken returns the user's token, minting one if none exists yet.
// The unique index on user_id guards against concurrent first logins.
func (c *Client) GetOrCreateToken(ctx context.Context, userID uint) (*Token, error) {
	var token Token
	err := c.db.WithContext(ctx).
		Where(Token{UserID: userID}).
		Attrs(Token{Key: uuid.New().String()}).
		FirstOrCreate(&token).Error
	if err != nil {
		// A concurrent request may have won the insert; fetch its token.
		var existing Token
		if ferr := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		log.Error("failed to get or create token", "error", err)
		return nil, err
	}
	return &token, nil
}

// GetUserByTokenKey resolves a bearer token to its user.
func (c *Client) GetUserByTokenKey(ctx context.Context, key string) (*User, error) {
	var token Token
	if err := c.db.WithContext(ctx).Where("key = ?", key).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to look up token", "error", err)
		return nil, err
	}
	return c.GetUserByID(ctx, token.UserID)
}
