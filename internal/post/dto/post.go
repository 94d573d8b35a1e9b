package dto

import "acebook-backend/internal/post/domain"

// CreatePostRequest is the body of POST /posts. Any user_id sent by the
// client is ignored; the author is always the authenticated caller.
type CreatePostRequest struct {
	Message string `json:"message" binding:"required"`
}

type PostsResponse struct {
	Posts []*domain.Post `json:"posts"`
	Token string         `json:"token"`
}

type PostResponse struct {
	Post  *domain.Post `json:"post"`
	Token string       `json:"token"`
}

type CreatePostResponse struct {
	Message string `json:"message"`
	PostID  string `json:"post_id"`
	Token   string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
