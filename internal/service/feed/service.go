package feed_service

import (
	"context"
	"log/slog"
	"time"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/metrics"
	"pulsefeed-backend/internal/model"
	category_repository "pulsefeed-backend/internal/repository/category"
	comment_repository "pulsefeed-backend/internal/repository/comment"
	follow_repository "pulsefeed-backend/internal/repository/follow"
	like_repository "pulsefeed-backend/internal/repository/like"
	post_repository "pulsefeed-backend/internal/repository/post"
	post_image_repository "pulsefeed-backend/internal/repository/post_image"
	user_repository "pulsefeed-backend/internal/repository/user"
)

const (
	// TotalLimit is the page size of the category feed.
	TotalLimit = 20

	// Per-band fetch limits. Band 1 covers the freshest window and gets
	// the largest share of the page.
	Band1Limit = 8
	Band2Limit = 7
	Band3Limit = 5

	// Band window edges, measured back from the request time.
	Band1Window = 2 * time.Hour
	Band2Window = 12 * time.Hour
	Band3Window = 48 * time.Hour

	// BufferMinutes is subtracted from last_seen so posts created while
	// the client was reading the previous page are not skipped.
	BufferMinutes = 45

	// MaxPostsPerCreator caps how many posts one author may occupy on a
	// single page.
	MaxPostsPerCreator = 1

	trendingPageSize = 10
)

type FeedService struct {
	postRepo     post_repository.Repository
	imageRepo    post_image_repository.Repository
	likeRepo     like_repository.Repository
	commentRepo  comment_repository.Repository
	userRepo     user_repository.Repository
	categoryRepo category_repository.Repository
	followRepo   follow_repository.Repository
	log          *logger.Logger
	metrics      metrics.MetricsProvider
}

func NewFeedService(
	postRepo post_repository.Repository,
	imageRepo post_image_repository.Repository,
	likeRepo like_repository.Repository,
	commentRepo comment_repository.Repository,
	userRepo user_repository.Repository,
	categoryRepo category_repository.Repository,
	followRepo follow_repository.Repository,
	log *logger.Logger,
	metricsProvider metrics.MetricsProvider,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		imageRepo:    imageRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		followRepo:   followRepo,
		log:          log,
		metrics:      metricsProvider,
	}
}

func (s *FeedService) CategoryFeed(ctx context.Context, viewerID string, query *model.CategoryFeedQuery) (*model.CategoryFeedPage, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordFeedAssemblyDuration("category", time.Since(start))
	}()

	category, err := s.categoryRepo.GetByTitle(ctx, query.Category)
	if err != nil {
		s.log.Error("Failed to resolve feed category",
			slog.String("category", query.Category),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	floor := effectiveTime(query.LastSeen)

	bands, err := s.fetchBands(ctx, category.ID, now, floor, query.Cursor)
	if err != nil {
		return nil, err
	}

	// Continuation points come from the raw fetch order, before any
	// shuffling touches the band contents.
	nextCursor := buildNextCursor(query.Cursor, bands)

	for i := range bands {
		shufflePosts(bands[i].posts, query.SessionSeed+bands[i].seedSuffix)
	}

	merged := mergeWithCreatorCap(bands, TotalLimit, MaxPostsPerCreator)

	if len(merged) == 0 {
		s.metrics.IncrementFeedFallbacks()
		merged, err = s.fallback(ctx, category.ID)
		if err != nil {
			return nil, err
		}
	}

	items, err := s.enrich(ctx, merged, viewerID)
	if err != nil {
		return nil, err
	}

	// An empty page keeps the client's watermark so the buffer floor does
	// not jump backwards on the next request.
	lastSeen := latestCreatedAt(merged)
	if lastSeen == nil {
		lastSeen = query.LastSeen
	}

	page := &model.CategoryFeedPage{
		Posts:      items,
		NextCursor: nextCursor,
		LastSeen:   lastSeen,
		HasMore:    len(merged) == TotalLimit,
	}

	s.metrics.IncrementFeedPages("category")
	s.log.Debug("Assembled category feed page",
		slog.String("category", query.Category),
		slog.Int("posts", len(items)),
		slog.Bool("has_more", page.HasMore))
	return page, nil
}

// effectiveTime is the created_at floor of a continuation request:
// last_seen rewound by the buffer, so posts published while the client
// was reading the previous page stay reachable. First requests carry no
// floor.
func effectiveTime(lastSeen *time.Time) *time.Time {
	if lastSeen == nil {
		return nil
	}
	t := lastSeen.Add(-BufferMinutes * time.Minute).UTC()
	return &t
}

// fallback runs an unconstrained recency query over the category when
// every band came back empty; no time or cursor bounds apply, the page
// must not come back empty while the category has posts.
func (s *FeedService) fallback(ctx context.Context, categoryID string) ([]*model.Post, error) {
	limit := TotalLimit
	filters := model.PostFilters{
		CategoryID: &categoryID,
		Limit:      &limit,
	}
	posts, err := s.postRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Feed fallback query failed", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

// latestCreatedAt is the last_seen watermark of a page: the newest
// created_at among the returned posts.
func latestCreatedAt(posts []*model.Post) *time.Time {
	var latest *time.Time
	for _, p := range posts {
		t := p.CreatedAt.Time
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest
}
