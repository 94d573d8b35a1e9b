package delivery

import (
	"net/http"
	"strings"

	"acebook-backend/internal/auth/usecase"
	"acebook-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// Keys under which AuthMiddleware stores the caller in the gin context.
const (
	ContextUserID = "userID"
	ContextClaims = "claims"
)

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := authUsecase.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RenewToken mints the sliding replacement for the token that authenticated c.
func RenewToken(c *gin.Context, authUsecase usecase.AuthUsecase) (string, error) {
	value, ok := c.Get(ContextClaims)
	if !ok {
		return "", token.ErrInvalidToken
	}
	claims, ok := value.(*token.Claims)
	if !ok {
		return "", token.ErrInvalidToken
	}
	return authUsecase.RenewToken(claims)
}
