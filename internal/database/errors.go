package database

import "errors"

// Sentinel errors returned by DB implementations so callers don't have to
// know about gorm internals.
var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)
