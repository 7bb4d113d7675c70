package like_repository

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	Create(ctx context.Context, like *model.Like) (*model.Like, error)
	Delete(ctx context.Context, postID, userID string) error
	Exists(ctx context.Context, postID, userID string) (bool, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	// GetByPosts is the single batched like-table scan the feed
	// enrichment stage runs per page.
	GetByPosts(ctx context.Context, postIDs []string) ([]*model.Like, error)
	UsersWhoLiked(ctx context.Context, postID string) ([]string, error)
	DeleteByPost(ctx context.Context, postID string) error
}
