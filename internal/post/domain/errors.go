package domain

import "errors"

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrEmptyMessage   = errors.New("message must not be empty")
	ErrMessageTooLong = errors.New("message is too long")
)
