package repository

import (
	"context"
	"fmt"
	"time"

	"acebook-backend/internal/post/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// postRecord is the postgres row; likes live in a text[] column so that
// set-add and set-remove are single atomic UPDATEs.
type postRecord struct {
	ID        string         `gorm:"primaryKey"`
	Message   string         `gorm:"type:text;not null"`
	UserID    string         `gorm:"not null;index:idx_posts_user_created,priority:1"`
	Likes     pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt time.Time      `gorm:"not null;index:idx_posts_user_created,priority:2"`
}

func (postRecord) TableName() string { return "posts" }

func (r *postRecord) toDomain() *domain.Post {
	likes := []string(r.Likes)
	if likes == nil {
		likes = []string{}
	}
	return &domain.Post{
		ID:        r.ID,
		Message:   r.Message,
		UserID:    r.UserID,
		Likes:     likes,
		CreatedAt: r.CreatedAt,
	}
}

// AutoMigrate creates or updates the posts table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&postRecord{})
}

// gormPostRepository implements PostRepository using GORM
type gormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-based PostRepository
func NewGormPostRepository(db *gorm.DB) PostRepository {
	return &gormPostRepository{db: db}
}

func (r *gormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate post id: %w", err)
	}

	rec := postRecord{
		ID:        id.String(),
		Message:   post.Message,
		UserID:    post.UserID,
		Likes:     pq.StringArray{},
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return err
	}

	post.ID = rec.ID
	post.CreatedAt = rec.CreatedAt
	post.Likes = []string{}
	return nil
}

func (r *gormPostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	var records []postRecord
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainPosts(records), nil
}

func (r *gormPostRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Post, error) {
	var records []postRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainPosts(records), nil
}

func (r *gormPostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var records []postRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return records[0].toDomain(), nil
}

func (r *gormPostRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE posts SET likes = array_append(likes, ?) WHERE id = ? AND NOT (? = ANY(likes))`,
		userID, postID, userID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	return false, r.ensureExists(ctx, postID)
}

func (r *gormPostRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE posts SET likes = array_remove(likes, ?) WHERE id = ? AND ? = ANY(likes)`,
		userID, postID, userID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	return false, r.ensureExists(ctx, postID)
}

// ensureExists distinguishes "nothing to change" from "no such post".
func (r *gormPostRepository) ensureExists(ctx context.Context, postID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&postRecord{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func toDomainPosts(records []postRecord) []*domain.Post {
	posts := make([]*domain.Post, 0, len(records))
	for i := range records {
		posts = append(posts, records[i].toDomain())
	}
	return posts
}
