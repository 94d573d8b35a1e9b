package usecase

import (
	"context"

	"acebook-backend/internal/post/domain"
)

// PostUsecase defines feed operations
type PostUsecase interface {
	// ListPosts returns every post, oldest first
	ListPosts(ctx context.Context) ([]*domain.Post, error)

	// GetPost returns one post or domain.ErrPostNotFound
	GetPost(ctx context.Context, id string) (*domain.Post, error)

	// CreatePost publishes message as userID
	CreatePost(ctx context.Context, userID, message string) (*domain.Post, error)

	// ListUserPosts returns the posts of one user, newest first
	ListUserPosts(ctx context.Context, userID string) ([]*domain.Post, error)

	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) error
}
