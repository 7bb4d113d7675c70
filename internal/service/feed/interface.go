package feed_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename FeedService.go
type Service interface {
	// CategoryFeed assembles one page of the banded category feed:
	// three recency bands fetched behind the session cursor, each
	// shuffled with the session seed, merged band-priority with a
	// per-creator cap and enriched in batch.
	CategoryFeed(ctx context.Context, viewerID string, query *model.CategoryFeedQuery) (*model.CategoryFeedPage, error)
	// HomeFeed returns posts authored by accounts the viewer follows,
	// falling back to trending posts when the viewer follows nobody or
	// the followed accounts have nothing to show.
	HomeFeed(ctx context.Context, viewerID string, offset, limit int) ([]*model.FeedItem, error)
	TrendingByCategory(ctx context.Context, viewerID string, categoryTitle string) ([]*model.FeedItem, error)
	// RandomCategoryFeed returns recent posts from a category excluding
	// ids the client has already shown, shuffled per request.
	RandomCategoryFeed(ctx context.Context, viewerID string, categoryTitle string, excludeIDs []string, limit int) ([]*model.FeedItem, error)
}
