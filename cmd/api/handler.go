package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	authUsecase "acebook-backend/internal/auth/usecase"
	postUsecase "acebook-backend/internal/post/usecase"
	"acebook-backend/pkg/logger"
	"acebook-backend/pkg/metrics"
	"acebook-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	postUsecase    postUsecase.PostUsecase
	authLimiter    *ratelimit.Limiter
	trustedProxies []string
	log            *zap.Logger
}

// NewHandler wires the usecases into an HTTP handler. Client IPs are taken
// from X-Forwarded-For only when the peer is one of trustedProxies.
func NewHandler(authUc authUsecase.AuthUsecase, postUc postUsecase.PostUsecase, authLimiter *ratelimit.Limiter, trustedProxies []string, log *zap.Logger) *Handler {
	return &Handler{
		authUsecase:    authUc,
		postUsecase:    postUc,
		authLimiter:    authLimiter,
		trustedProxies: trustedProxies,
		log:            log,
	}
}

// Engine builds the gin engine with middleware and every route mounted.
func (h *Handler) Engine() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(h.trustedProxies); err != nil {
		h.log.Error("invalid trusted proxies, trusting none", zap.Strings("proxies", h.trustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(metrics.Middleware(), logger.GinLogger(h.log), logger.GinRecovery(h.log))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.postUsecase, h.authLimiter)
	return r
}

// Start serves on addr until ctx is cancelled, then drains in-flight requests.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	h.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
