package api

import (
	"net/http"

	"acebook-backend/internal/auth/delivery"
	authUsecase "acebook-backend/internal/auth/usecase"
	postDelivery "acebook-backend/internal/post/delivery"
	postUsecase "acebook-backend/internal/post/usecase"
	"acebook-backend/pkg/metrics"
	"acebook-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, postUsecase postUsecase.PostUsecase, authLimiter *ratelimit.Limiter) {
	authHandler := delivery.NewAuthHandler(authUsecase)
	postHandler := postDelivery.NewPostHandler(postUsecase, authUsecase)

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Account routes (public, rate limited)
	public := r.Group("")
	public.Use(authLimiter.Middleware())
	{
		public.POST("/users", authHandler.Signup)
		public.POST("/tokens", authHandler.Login)
	}

	// User routes (protected)
	users := r.Group("/users")
	users.Use(delivery.AuthMiddleware(authUsecase))
	{
		users.PUT("/avatar", authHandler.UpdateAvatar)
		users.GET("/:user_id", authHandler.GetUser)
	}

	// Post routes (protected)
	posts := r.Group("/posts")
	posts.Use(delivery.AuthMiddleware(authUsecase))
	{
		posts.GET("", postHandler.Index)
		posts.POST("", postHandler.Create)
		posts.GET("/:id", postHandler.Show)
		posts.POST("/like/:id", postHandler.Like)
		posts.DELETE("/like/:id", postHandler.Unlike)
	}

	r.GET("/profile/:user_id", delivery.AuthMiddleware(authUsecase), postHandler.FindPostsByUserId)
}
