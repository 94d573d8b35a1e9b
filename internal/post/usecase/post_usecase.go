package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"acebook-backend/internal/post/domain"
	"acebook-backend/internal/post/repository"
	"acebook-backend/pkg/metrics"
)

// postUsecase implements PostUsecase interface
type postUsecase struct {
	postRepo repository.PostRepository
}

// NewPostUsecase creates a new instance of postUsecase
func NewPostUsecase(postRepo repository.PostRepository) PostUsecase {
	return &postUsecase{postRepo: postRepo}
}

func (u *postUsecase) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return u.postRepo.FindAll(ctx)
}

func (u *postUsecase) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return u.postRepo.FindByID(ctx, id)
}

func (u *postUsecase) CreatePost(ctx context.Context, userID, message string) (*domain.Post, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > domain.MaxMessageLength {
		return nil, domain.ErrMessageTooLong
	}

	post := &domain.Post{
		Message: message,
		UserID:  userID,
	}
	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	metrics.RecordPostCreated()
	return post, nil
}

func (u *postUsecase) ListUserPosts(ctx context.Context, userID string) ([]*domain.Post, error) {
	return u.postRepo.FindByUserID(ctx, userID)
}

func (u *postUsecase) LikePost(ctx context.Context, postID, userID string) error {
	added, err := u.postRepo.AddLike(ctx, postID, userID)
	if err != nil {
		return err
	}
	if added {
		metrics.RecordLike(metrics.LikeAdded)
	} else {
		metrics.RecordLike(metrics.LikeDuplicate)
	}
	return nil
}

func (u *postUsecase) UnlikePost(ctx context.Context, postID, userID string) error {
	removed, err := u.postRepo.RemoveLike(ctx, postID, userID)
	if err != nil {
		return err
	}
	if removed {
		metrics.RecordLike(metrics.LikeRemoved)
	}
	return nil
}
