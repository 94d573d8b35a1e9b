package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	authdomain "acebook-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in process memory. Used with DB_DRIVER=memory and in tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]authdomain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]authdomain.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *authdomain.User) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate user id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return authdomain.ErrEmailTaken
		}
		if existing.Username == user.Username {
			return authdomain.ErrUsernameTaken
		}
	}

	user.ID = id.String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	return r.find(func(u *authdomain.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*authdomain.User, error) {
	return r.find(func(u *authdomain.User) bool { return u.Username == username })
}

func (r *MemoryUserRepository) UpdateAvatar(_ context.Context, id, avatar string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return authdomain.ErrUserNotFound
	}
	u.Avatar = avatar
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

func (r *MemoryUserRepository) find(match func(*authdomain.User) bool) (*authdomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(&u) {
			found := u
			return &found, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}
