package post_image_repository

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	Attach(ctx context.Context, postID string, images []*model.PostImage) error
	// GetByPost returns a post's images ordered by position ascending.
	GetByPost(ctx context.Context, postID string) ([]*model.PostImage, error)
	// GetByPosts is the batched variant used by the feed path; images of
	// every post come back position-ordered in one query.
	GetByPosts(ctx context.Context, postIDs []string) ([]*model.PostImage, error)
	DeleteByPost(ctx context.Context, postID string) error
}
