package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

const postCacheKeyPrefix = "post:"

type PostCache struct {
	client *Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewPostCache(client *Client, ttl time.Duration, log *logger.Logger) *PostCache {
	return &PostCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID string) (*model.PostDetailed, error) {
	key := p.postKey(postID)

	var post model.PostDetailed
	err := p.client.Get(ctx, key, &post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			p.log.Debug("Post cache miss", slog.String("post_id", postID))
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post from cache",
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}

	p.log.Debug("Post cache hit", slog.String("post_id", postID))
	return &post, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetailed) error {
	if post == nil || post.Post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	key := p.postKey(post.Post.ID)
	if err := p.client.Set(ctx, key, post, p.ttl); err != nil {
		p.log.Error("Failed to set post cache",
			slog.String("post_id", post.Post.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post cache: %w", err)
	}
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID string) error {
	key := p.postKey(postID)
	if err := p.client.Delete(ctx, key); err != nil {
		p.log.Error("Failed to delete post from cache",
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}
	return nil
}

func (p *PostCache) postKey(postID string) string {
	return postCacheKeyPrefix + postID
}
