package post_repository

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Post, error)
	Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	// List runs a single range query over posts: category/author equality,
	// half-open created_at window, exclusive cursor bound, exclusion set,
	// ordered by created_at descending.
	List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// TrendingIDs delegates ranking to the get_trending_post_ids database
	// function and returns post ids in rank order.
	TrendingIDs(ctx context.Context, offset, limit int) ([]string, error)
	TrendingIDsByCategory(ctx context.Context, categoryID string, limit int) ([]string, error)
}
