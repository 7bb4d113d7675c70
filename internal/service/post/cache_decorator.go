package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pulsefeed-backend/internal/cache"
	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/metrics"
	"pulsefeed-backend/internal/model"
	like_repository "pulsefeed-backend/internal/repository/like"
)

// PostServiceCacheDecorator wraps the post service with a read-through
// Redis cache keyed by post id. Cached entries are viewer neutral; the
// viewer's like flag is re-checked on every hit.
type PostServiceCacheDecorator struct {
	service   Service
	postCache cache.PostCache
	likeRepo  like_repository.Repository
	log       *logger.Logger
	metrics   metrics.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service Service,
	postCache cache.PostCache,
	likeRepo like_repository.Repository,
	log *logger.Logger,
	metricsProvider metrics.MetricsProvider,
) Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		likeRepo:  likeRepo,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	if err := d.postCache.SetPost(ctx, neutralized(result)); err != nil {
		d.log.Warn("Failed to cache created post",
			slog.String("post_id", result.Post.ID),
			slog.String("error", err.Error()))
	}
	return result, nil
}

func (d *PostServiceCacheDecorator) GetPostByID(ctx context.Context, viewerID string, id string) (*model.PostDetailed, error) {
	start := time.Now()
	cached, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("get_post", time.Since(start))

	if err == nil {
		d.metrics.IncrementCacheHits()
		if viewerID != "" {
			liked, likeErr := d.likeRepo.Exists(ctx, id, viewerID)
			if likeErr != nil {
				d.log.Warn("Failed to check viewer like on cache hit",
					slog.String("post_id", id),
					slog.String("error", likeErr.Error()))
			} else {
				cached.LikedByUser = liked
			}
		}
		return cached, nil
	}
	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Post cache read failed, falling through",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.IncrementCacheMisses()

	result, err := d.service.GetPostByID(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}

	if err := d.postCache.SetPost(ctx, neutralized(result)); err != nil {
		d.log.Warn("Failed to cache post",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}
	return result, nil
}

func (d *PostServiceCacheDecorator) ListByUser(ctx context.Context, viewerID string, userID string, offset, limit int) ([]*model.PostDetailed, error) {
	return d.service.ListByUser(ctx, viewerID, userID, offset, limit)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, userID string, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	updated, err := d.service.UpdatePost(ctx, userID, id, update)
	if err != nil {
		return nil, err
	}

	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after update",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}
	return updated, nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, userID string, id string) error {
	if err := d.service.DeletePost(ctx, userID, id); err != nil {
		return err
	}

	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after delete",
			slog.String("post_id", id),
			slog.String("error", err.Error()))
	}
	return nil
}

// neutralized strips the viewer-specific like flag before the entry is
// shared across viewers.
func neutralized(detailed *model.PostDetailed) *model.PostDetailed {
	copied := *detailed
	copied.LikedByUser = false
	return &copied
}
