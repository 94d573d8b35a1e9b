package repository

import (
	"context"

	authdomain "acebook-backend/internal/auth/domain"
)

// UserRepository defines the interface for user data access.
// Lookups that match nothing return authdomain.ErrUserNotFound.
type UserRepository interface {
	// Create assigns the ID and timestamps and stores the user.
	// Duplicates yield ErrEmailTaken or ErrUsernameTaken.
	Create(ctx context.Context, user *authdomain.User) error

	FindByID(ctx context.Context, id string) (*authdomain.User, error)

	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)

	FindByUsername(ctx context.Context, username string) (*authdomain.User, error)

	UpdateAvatar(ctx context.Context, id, avatar string) error
}
