package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "acebook-backend/cmd/api"
	authdomain "acebook-backend/internal/auth/domain"
	authRepo "acebook-backend/internal/auth/repository"
	authUsecase "acebook-backend/internal/auth/usecase"
	postRepo "acebook-backend/internal/post/repository"
	postUsecase "acebook-backend/internal/post/usecase"
	"acebook-backend/pkg/config"
	"acebook-backend/pkg/database"
	"acebook-backend/pkg/logger"
	"acebook-backend/pkg/ratelimit"
	"acebook-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories (dependency injection)
	userRepository, postRepository, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepository, tokens, cfg.AvatarCount)
	postUc := postUsecase.NewPostUsecase(postRepository)

	authLimiter := ratelimit.New(cfg.AuthRateLimit, cfg.AuthRateBurst)
	authLimiter.StartCleanup(ctx, time.Minute, 10*time.Minute)

	handler := api.NewHandler(authUc, postUc, authLimiter, cfg.TrustedProxyList(), log)
	return handler.Start(ctx, ":"+cfg.Port)
}

// openStore connects the backend named by DB_DRIVER and prepares its schema.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (authRepo.UserRepository, postRepo.PostRepository, func(), error) {
	log = log.With(zap.String("driver", cfg.DBDriver))

	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := database.NewPostgresConnection(cfg, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := db.AutoMigrate(&authdomain.User{}); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate users: %w", err)
		}
		if err := postRepo.AutoMigrate(db); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate posts: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Info("storage ready")
		return authRepo.NewUserRepository(db), postRepo.NewGormPostRepository(db), closeFn, nil

	case config.DriverMongo:
		client, mdb, err := database.NewMongoConnection(ctx, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		users := authRepo.NewMongoUserRepository(mdb)
		posts := postRepo.NewMongoPostRepository(mdb)
		if err := users.EnsureIndexes(ctx); err != nil {
			return nil, nil, nil, err
		}
		if err := posts.EnsureIndexes(ctx); err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		log.Info("storage ready")
		return users, posts, closeFn, nil

	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return authRepo.NewMemoryUserRepository(), postRepo.NewMemoryPostRepository(), func() {}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
}
