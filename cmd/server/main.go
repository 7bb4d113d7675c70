package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	redis_cache "pulsefeed-backend/internal/cache/redis"
	"pulsefeed-backend/internal/config"
	delivery_http "pulsefeed-backend/internal/delivery/http"
	"pulsefeed-backend/internal/delivery/http/handler"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/metrics"
	prometheus_metrics "pulsefeed-backend/internal/metrics/prometheus"
	category_postgres "pulsefeed-backend/internal/repository/category/postgres"
	comment_postgres "pulsefeed-backend/internal/repository/comment/postgres"
	follow_postgres "pulsefeed-backend/internal/repository/follow/postgres"
	like_postgres "pulsefeed-backend/internal/repository/like/postgres"
	post_postgres "pulsefeed-backend/internal/repository/post/postgres"
	post_image_postgres "pulsefeed-backend/internal/repository/post_image/postgres"
	"pulsefeed-backend/internal/repository/postgres"
	user_postgres "pulsefeed-backend/internal/repository/user/postgres"
	auth_service "pulsefeed-backend/internal/service/auth"
	comment_service "pulsefeed-backend/internal/service/comment"
	feed_service "pulsefeed-backend/internal/service/feed"
	follow_service "pulsefeed-backend/internal/service/follow"
	like_service "pulsefeed-backend/internal/service/like"
	media_service "pulsefeed-backend/internal/service/media"
	post_service "pulsefeed-backend/internal/service/post"
	search_service "pulsefeed-backend/internal/service/search"
	user_service "pulsefeed-backend/internal/service/user"
)

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	runMigrations(cfg, dsn, log)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	metricsProvider := prometheus_metrics.NewPrometheusMetricsProvider()
	metricsProvider.SetServiceHealth(true)

	postCache := redis_cache.NewPostCache(redisClient, cfg.Feed.PostCacheTTL, log)

	unitOfWork := postgres.NewPostgresUOW(pool, log)
	postRepo := post_postgres.NewPostRepository(pool, log)
	imageRepo := post_image_postgres.NewPostImageRepository(pool, log)
	likeRepo := like_postgres.NewLikeRepository(pool, log)
	commentRepo := comment_postgres.NewCommentRepository(pool, log)
	userRepo := user_postgres.NewUserRepository(pool, log)
	categoryRepo := category_postgres.NewCategoryRepository(pool, log)
	followRepo := follow_postgres.NewFollowRepository(pool, log)

	mediaStorage, err := media_service.NewFilesystemStorage(cfg.Media.Dir, cfg.Media.BaseURL, log)
	if err != nil {
		log.Error("Failed to init media storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens := auth_service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AuthTokenTTL, cfg.Auth.RefreshTokenTTL)
	otpSender := auth_service.NewLogSender(log)

	authService := auth_service.NewAuthService(userRepo, tokens, otpSender, cfg.Auth.OTPTTL, log)
	userService := user_service.NewUserService(userRepo, postRepo, followRepo, log)
	likeService := like_service.NewLikeService(likeRepo, postRepo, userRepo, log)
	commentService := comment_service.NewCommentService(commentRepo, postRepo, userRepo, log)
	followService := follow_service.NewFollowService(followRepo, userRepo, log)
	searchService := search_service.NewSearchService(userRepo, log)
	feedService := feed_service.NewFeedService(
		postRepo, imageRepo, likeRepo, commentRepo, userRepo, categoryRepo, followRepo,
		log, metricsProvider)

	postService := post_service.NewPostServiceCacheDecorator(
		post_service.NewPostService(postRepo, imageRepo, likeRepo, commentRepo, userRepo, categoryRepo, unitOfWork, log),
		postCache,
		likeRepo,
		log,
		metricsProvider,
	)

	router := delivery_http.NewRouter(cfg, tokens, metricsProvider, delivery_http.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Users:    handler.NewUserHandler(userService),
		Posts:    handler.NewPostHandler(postService),
		Likes:    handler.NewLikeHandler(likeService),
		Comments: handler.NewCommentHandler(commentService),
		Follows:  handler.NewFollowHandler(followService),
		Feed:     handler.NewFeedHandler(feedService),
		Search:   handler.NewSearchHandler(searchService),
		Media:    handler.NewMediaHandler(mediaStorage),
	})

	httpServer := delivery_http.NewServer(router, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log)
	metricsServer := metrics.NewServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metricsProvider.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone
	log.Info("Servers stopped")
}

func runMigrations(cfg *config.Config, dsn string, log *logger.Logger) {
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, dsn)
	if err != nil {
		log.Error("Failed to init migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("Migrations applied")
}
