package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	authdomain "acebook-backend/internal/auth/domain"
	authdto "acebook-backend/internal/auth/dto"
	"acebook-backend/internal/auth/repository"
	"acebook-backend/pkg/metrics"
	"acebook-backend/pkg/token"
)

var avatarPattern = regexp.MustCompile(`^public/images/avatars/([1-9][0-9]*)\.svg$`)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo    repository.UserRepository
	tokens      *token.Service
	avatarCount int
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens *token.Service, avatarCount int) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		tokens:      tokens,
		avatarCount: avatarCount,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *authdto.SignupRequest) (*authdomain.User, string, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if len(username) < 2 {
		return nil, "", authdomain.ErrInvalidUsername
	}

	avatar := authdomain.DefaultAvatar
	if req.Avatar != "" {
		if !u.validAvatar(req.Avatar) {
			return nil, "", authdomain.ErrInvalidAvatar
		}
		avatar = req.Avatar
	}

	if _, err := u.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", authdomain.ErrEmailTaken
	} else if !errors.Is(err, authdomain.ErrUserNotFound) {
		return nil, "", err
	}
	if _, err := u.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", authdomain.ErrUsernameTaken
	} else if !errors.Is(err, authdomain.ErrUserNotFound) {
		return nil, "", err
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &authdomain.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Avatar:   avatar,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}
	metrics.RecordSignup()

	tok, err := u.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdomain.User, string, error) {
	user, err := u.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			metrics.RecordLogin(false)
			return nil, "", authdomain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		metrics.RecordLogin(false)
		return nil, "", authdomain.ErrInvalidCredentials
	}
	metrics.RecordLogin(true)

	tok, err := u.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

func (u *authUsecase) GetUser(ctx context.Context, id string) (*authdomain.User, error) {
	return u.userRepo.FindByID(ctx, id)
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID, avatar string) error {
	if !u.validAvatar(avatar) {
		return authdomain.ErrInvalidAvatar
	}
	return u.userRepo.UpdateAvatar(ctx, userID, avatar)
}

func (u *authUsecase) ValidateToken(tokenString string) (*token.Claims, error) {
	claims, err := u.tokens.Parse(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authdomain.ErrUnauthorized, err)
	}
	return claims, nil
}

func (u *authUsecase) RenewToken(claims *token.Claims) (string, error) {
	return u.tokens.Renew(claims)
}

func (u *authUsecase) validAvatar(avatar string) bool {
	m := avatarPattern.FindStringSubmatch(avatar)
	if m == nil {
		return false
	}
	n, err := strconv.Atoi(m[1])
	return err == nil && n <= u.avatarCount
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
