package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"acebook-backend/internal/post/domain"

	"github.com/google/uuid"
)

// MemoryPostRepository keeps posts in insertion order in process memory.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts []*domain.Post
	index map[string]*domain.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{index: make(map[string]*domain.Post)}
}

func (r *MemoryPostRepository) Create(_ context.Context, post *domain.Post) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate post id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = id.String()
	post.CreatedAt = time.Now().UTC()
	post.Likes = []string{}

	stored := clonePost(post)
	r.posts = append(r.posts, stored)
	r.index[stored.ID] = stored
	return nil
}

func (r *MemoryPostRepository) FindAll(_ context.Context) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	return out, nil
}

func (r *MemoryPostRepository) FindByUserID(_ context.Context, userID string) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Post, 0)
	for i := len(r.posts) - 1; i >= 0; i-- {
		if r.posts[i].UserID == userID {
			out = append(out, clonePost(r.posts[i]))
		}
	}
	return out, nil
}

func (r *MemoryPostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *MemoryPostRepository) AddLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.index[postID]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	if p.LikedBy(userID) {
		return false, nil
	}
	p.Likes = append(p.Likes, userID)
	return true, nil
}

func (r *MemoryPostRepository) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.index[postID]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = append([]string{}, p.Likes...)
	return &c
}
