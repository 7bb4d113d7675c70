package feed_service

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/model"
)

// band is one recency slice of the category feed: its window, fetch
// limit, incoming cursor and the posts fetched for the current page.
type band struct {
	seedSuffix string
	newerBound time.Time // window upper edge, exclusive
	olderBound time.Time // window lower edge, inclusive
	limit      int
	cursor     *time.Time
	posts      []*model.Post
}

func newBands(now time.Time, cursor model.FeedCursor) []band {
	return []band{
		{
			seedSuffix: "_b1",
			newerBound: now,
			olderBound: now.Add(-Band1Window),
			limit:      Band1Limit,
			cursor:     cursor.B1,
		},
		{
			seedSuffix: "_b2",
			newerBound: now.Add(-Band1Window),
			olderBound: now.Add(-Band2Window),
			limit:      Band2Limit,
			cursor:     cursor.B2,
		},
		{
			seedSuffix: "_b3",
			newerBound: now.Add(-Band2Window),
			olderBound: now.Add(-Band3Window),
			limit:      Band3Limit,
			cursor:     cursor.B3,
		},
	}
}

// fetchBands issues one windowed range query per band, newest band
// first. The windows are fixed relative to the request time; on
// continuation pages each query is further bounded by the band's cursor
// and by the buffer floor, which keeps posts inserted just before
// last_seen visible without re-reading the whole window.
func (s *FeedService) fetchBands(ctx context.Context, categoryID string, now time.Time, floor *time.Time, cursor model.FeedCursor) ([]band, error) {
	bands := newBands(now, cursor)
	for i := range bands {
		b := &bands[i]
		limit := b.limit
		lower := b.olderBound
		if floor != nil && floor.After(lower) {
			lower = *floor
		}
		filters := model.PostFilters{
			CategoryID:    &categoryID,
			CreatedAfter:  tsPtr(lower),
			CreatedBefore: tsPtr(b.newerBound),
			Limit:         &limit,
		}
		if b.cursor != nil {
			filters.CursorBefore = tsPtr(*b.cursor)
		}
		posts, err := s.postRepo.List(ctx, filters)
		if err != nil {
			s.log.Error("Feed band query failed",
				slog.String("band", b.seedSuffix),
				slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		b.posts = posts
	}
	return bands, nil
}

// buildNextCursor advances each band's continuation point to the oldest
// created_at of its fetch. Posts arrive newest-first, so that is the
// final element. An empty fetch keeps the incoming value so retries and
// exhausted bands stay stable.
func buildNextCursor(prev model.FeedCursor, bands []band) model.FeedCursor {
	next := prev
	for i := range bands {
		if len(bands[i].posts) == 0 {
			continue
		}
		oldest := bands[i].posts[len(bands[i].posts)-1].CreatedAt.Time
		switch bands[i].seedSuffix {
		case "_b1":
			next.B1 = &oldest
		case "_b2":
			next.B2 = &oldest
		case "_b3":
			next.B3 = &oldest
		}
	}
	return next
}

func tsPtr(t time.Time) *pgtype.Timestamptz {
	return &pgtype.Timestamptz{Time: t, Valid: true}
}
