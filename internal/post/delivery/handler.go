package delivery

import (
	"errors"
	"net/http"

	authdelivery "acebook-backend/internal/auth/delivery"
	authusecase "acebook-backend/internal/auth/usecase"
	"acebook-backend/internal/post/domain"
	"acebook-backend/internal/post/dto"
	"acebook-backend/internal/post/usecase"
	"acebook-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// PostHandler handles feed, profile and like requests
type PostHandler struct {
	postUsecase usecase.PostUsecase
	authUsecase authusecase.AuthUsecase
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postUsecase usecase.PostUsecase, authUsecase authusecase.AuthUsecase) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		authUsecase: authUsecase,
	}
}

// Index lists every post
// GET /posts
func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.postUsecase.ListPosts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondPosts(c, posts)
}

// Show returns a single post
// GET /posts/:id
func (h *PostHandler) Show(c *gin.Context) {
	post, err := h.postUsecase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	tok, err := authdelivery.RenewToken(c, h.authUsecase)
	if err != nil {
		writeError(c, err)
		return
	}

	if post.Likes == nil {
		post.Likes = []string{}
	}
	c.JSON(http.StatusOK, dto.PostResponse{Post: post, Token: tok})
}

// Create publishes a post as the authenticated caller
// POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), c.GetString(authdelivery.ContextUserID), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	tok, err := authdelivery.RenewToken(c, h.authUsecase)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreatePostResponse{Message: "OK", PostID: post.ID, Token: tok})
}

// FindPostsByUserId lists one user's posts, newest first
// GET /profile/:user_id
func (h *PostHandler) FindPostsByUserId(c *gin.Context) {
	posts, err := h.postUsecase.ListUserPosts(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondPosts(c, posts)
}

// Like adds the caller to a post's likes
// POST /posts/like/:id
func (h *PostHandler) Like(c *gin.Context) {
	if err := h.postUsecase.LikePost(c.Request.Context(), c.Param("id"), c.GetString(authdelivery.ContextUserID)); err != nil {
		writeError(c, err)
		return
	}
	h.respondMessage(c, "Post liked")
}

// Unlike removes the caller from a post's likes
// DELETE /posts/like/:id
func (h *PostHandler) Unlike(c *gin.Context) {
	if err := h.postUsecase.UnlikePost(c.Request.Context(), c.Param("id"), c.GetString(authdelivery.ContextUserID)); err != nil {
		writeError(c, err)
		return
	}
	h.respondMessage(c, "Post unliked")
}

func (h *PostHandler) respondPosts(c *gin.Context, posts []*domain.Post) {
	tok, err := authdelivery.RenewToken(c, h.authUsecase)
	if err != nil {
		writeError(c, err)
		return
	}

	if posts == nil {
		posts = []*domain.Post{}
	}
	for _, p := range posts {
		if p.Likes == nil {
			p.Likes = []string{}
		}
	}
	c.JSON(http.StatusOK, dto.PostsResponse{Posts: posts, Token: tok})
}

func (h *PostHandler) respondMessage(c *gin.Context, message string) {
	tok, err := authdelivery.RenewToken(c, h.authUsecase)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message, Token: tok})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMessageTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, token.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
