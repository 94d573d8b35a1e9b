package delivery

import (
	"errors"
	"net/http"

	authdomain "acebook-backend/internal/auth/domain"
	authdto "acebook-backend/internal/auth/dto"
	"acebook-backend/internal/auth/usecase"
	"acebook-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and profile requests
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Signup creates an account
// POST /users
func (h *AuthHandler) Signup(c *gin.Context) {
	var req authdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tok, err := h.authUsecase.Signup(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authdto.AuthResponse{Message: "OK", UserID: user.ID, Token: tok})
}

// Login exchanges credentials for a token
// POST /tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, tok, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authdto.AuthResponse{Message: "OK", UserID: user.ID, Token: tok})
}

// GetUser returns the public profile of a user
// GET /users/:user_id
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authUsecase.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	tok, err := RenewToken(c, h.authUsecase)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Profile(), "token": tok})
}

// UpdateAvatar sets the caller's avatar
// PUT /users/avatar
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	var req authdto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.UpdateAvatar(c.Request.Context(), c.GetString(ContextUserID), req.Avatar); err != nil {
		writeError(c, err)
		return
	}

	tok, err := RenewToken(c, h.authUsecase)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar updated", "token": tok})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authdomain.ErrInvalidAvatar), errors.Is(err, authdomain.ErrInvalidUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrInvalidCredentials), errors.Is(err, authdomain.ErrUnauthorized),
		errors.Is(err, token.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrEmailTaken), errors.Is(err, authdomain.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
