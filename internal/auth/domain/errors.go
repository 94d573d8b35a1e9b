package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAvatar      = errors.New("invalid avatar")
	ErrInvalidUsername    = errors.New("username must be at least 2 characters")
	ErrUnauthorized       = errors.New("unauthorized")
)
