package feed_service

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/model"
)

func (s *FeedService) HomeFeed(ctx context.Context, viewerID string, offset, limit int) ([]*model.FeedItem, error) {
	if limit <= 0 {
		limit = TotalLimit
	}

	followingIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		s.log.Error("Failed to load following set for home feed",
			slog.String("viewer_id", viewerID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var posts []*model.Post
	if len(followingIDs) > 0 {
		filters := model.PostFilters{
			UserIDs: followingIDs,
			Limit:   &limit,
			Offset:  &offset,
		}
		posts, err = s.postRepo.List(ctx, filters)
		if err != nil {
			s.log.Error("Home feed query failed", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	if len(posts) == 0 {
		posts, err = s.trendingPosts(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
	}

	s.metrics.IncrementFeedPages("home")
	return s.enrich(ctx, posts, viewerID)
}

func (s *FeedService) TrendingByCategory(ctx context.Context, viewerID string, categoryTitle string) ([]*model.FeedItem, error) {
	category, err := s.categoryRepo.GetByTitle(ctx, categoryTitle)
	if err != nil {
		s.log.Error("Failed to resolve trending category",
			slog.String("category", categoryTitle),
			slog.String("error", err.Error()))
		return nil, err
	}

	ids, err := s.postRepo.TrendingIDsByCategory(ctx, category.ID, trendingPageSize)
	if err != nil {
		s.log.Error("Trending ranking query failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	posts, err := s.postsInRankOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementFeedPages("trending")
	return s.enrich(ctx, posts, viewerID)
}

func (s *FeedService) RandomCategoryFeed(ctx context.Context, viewerID string, categoryTitle string, excludeIDs []string, limit int) ([]*model.FeedItem, error) {
	category, err := s.categoryRepo.GetByTitle(ctx, categoryTitle)
	if err != nil {
		s.log.Error("Failed to resolve random feed category",
			slog.String("category", categoryTitle),
			slog.String("error", err.Error()))
		return nil, err
	}
	if limit <= 0 {
		limit = TotalLimit
	}

	filters := model.PostFilters{
		CategoryID: &category.ID,
		ExcludeIDs: excludeIDs,
		Limit:      &limit,
	}
	posts, err := s.postRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Random feed query failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	// Unlike the banded feed this order is not session stable; every
	// request deals a fresh hand.
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})

	s.metrics.IncrementFeedPages("random")
	return s.enrich(ctx, posts, viewerID)
}

func (s *FeedService) trendingPosts(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	ids, err := s.postRepo.TrendingIDs(ctx, offset, limit)
	if err != nil {
		s.log.Error("Trending ranking query failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.postsInRankOrder(ctx, ids)
}

// postsInRankOrder loads posts by id and restores the ranking order the
// id list came in with.
func (s *FeedService) postsInRankOrder(ctx context.Context, ids []string) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	posts, err := s.postRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load ranked posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	byID := make(map[string]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
