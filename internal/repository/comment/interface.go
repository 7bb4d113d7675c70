package comment_repository

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	Update(ctx context.Context, id string, text string, commentFor model.CommentFor) (*model.Comment, error)
	// Delete removes a comment and its direct replies; reply chains
	// deeper than one level are not cascaded.
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
	ListTopLevel(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error)
	ListReplies(ctx context.Context, parentID string, offset, limit int) ([]*model.Comment, error)
	CountReplies(ctx context.Context, parentID string) (int, error)
	CountByPost(ctx context.Context, postID string) (int, error)
	// StanceByPosts is the single batched comment-table scan the feed
	// enrichment stage runs per page: support/deny tallies per post.
	StanceByPosts(ctx context.Context, postIDs []string) ([]*model.CommentStance, error)
}
