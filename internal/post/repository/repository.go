package repository

import (
	"context"

	"acebook-backend/internal/post/domain"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create assigns ID and CreatedAt and stores the post with an empty likes set
	Create(ctx context.Context, post *domain.Post) error

	// FindAll returns every post, oldest first
	FindAll(ctx context.Context) ([]*domain.Post, error)

	// FindByUserID returns the posts of one user, newest first
	FindByUserID(ctx context.Context, userID string) ([]*domain.Post, error)

	// FindByID returns domain.ErrPostNotFound for unknown or malformed ids
	FindByID(ctx context.Context, id string) (*domain.Post, error)

	// AddLike atomically adds userID to the likes set.
	// added is false when the user had already liked the post.
	AddLike(ctx context.Context, postID, userID string) (added bool, err error)

	// RemoveLike atomically removes userID from the likes set.
	RemoveLike(ctx context.Context, postID, userID string) (removed bool, err error)
}
