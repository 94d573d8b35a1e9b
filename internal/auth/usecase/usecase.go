package usecase

import (
	"context"

	authdomain "acebook-backend/internal/auth/domain"
	authdto "acebook-backend/internal/auth/dto"
	"acebook-backend/pkg/token"
)

// AuthUsecase defines account and session operations
type AuthUsecase interface {
	// Signup creates an account and returns it with a fresh token
	Signup(ctx context.Context, req *authdto.SignupRequest) (*authdomain.User, string, error)

	// Login verifies credentials and returns the user with a fresh token
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdomain.User, string, error)

	GetUser(ctx context.Context, id string) (*authdomain.User, error)

	// UpdateAvatar switches the user to one of the bundled avatars
	UpdateAvatar(ctx context.Context, userID, avatar string) error

	// ValidateToken verifies a bearer token and returns its claims
	ValidateToken(tokenString string) (*token.Claims, error)

	// RenewToken issues the sliding replacement for an accepted token
	RenewToken(claims *token.Claims) (string, error)
}
