package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	authdomain "acebook-backend/internal/auth/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// userRepository implements UserRepository on postgres through gorm
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate user id: %w", err)
	}
	user.ID = id.String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*authdomain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	res := r.db.WithContext(ctx).Model(&authdomain.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"avatar":     avatar,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "username") {
		return authdomain.ErrUsernameTaken
	}
	return authdomain.ErrEmailTaken
}
