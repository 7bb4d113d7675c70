package feed_service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/metrics"
	"pulsefeed-backend/internal/model"
	category_memory "pulsefeed-backend/internal/repository/category/memory"
	comment_memory "pulsefeed-backend/internal/repository/comment/memory"
	follow_memory "pulsefeed-backend/internal/repository/follow/memory"
	like_memory "pulsefeed-backend/internal/repository/like/memory"
	post_memory "pulsefeed-backend/internal/repository/post/memory"
	post_image_memory "pulsefeed-backend/internal/repository/post_image/memory"
	user_memory "pulsefeed-backend/internal/repository/user/memory"
)

type feedFixture struct {
	svc      *FeedService
	posts    *post_memory.PostRepository
	images   *post_image_memory.PostImageRepository
	likes    *like_memory.LikeRepository
	comments *comment_memory.CommentRepository
	users    *user_memory.UserRepository
	follows  *follow_memory.FollowRepository
	category *model.Category
	now      time.Time
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	log := logger.New("test")

	fx := &feedFixture{
		posts:    post_memory.NewPostRepository(log),
		images:   post_image_memory.NewPostImageRepository(log),
		likes:    like_memory.NewLikeRepository(log),
		comments: comment_memory.NewCommentRepository(log),
		users:    user_memory.NewUserRepository(log),
		follows:  follow_memory.NewFollowRepository(log),
		now:      time.Now().UTC(),
	}
	categories := category_memory.NewCategoryRepository(log)
	category, err := categories.Create(context.Background(), &model.Category{Title: "technology"})
	require.NoError(t, err)
	fx.category = category

	fx.svc = NewFeedService(fx.posts, fx.images, fx.likes, fx.comments, fx.users, categories, fx.follows, log, metrics.NewNoop())
	return fx
}

func (fx *feedFixture) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := fx.users.Create(context.Background(), &model.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
		Verified: true,
	})
	require.NoError(t, err)
	return user
}

// seedPost places a post age back from the fixture's reference time.
func (fx *feedFixture) seedPost(t *testing.T, userID string, age time.Duration) *model.Post {
	t.Helper()
	created := fx.now.Add(-age)
	post, err := fx.posts.Create(context.Background(), &model.Post{
		UserID:     userID,
		Title:      fmt.Sprintf("post %s", age),
		CategoryID: fx.category.ID,
		CreatedAt:  pgtype.Timestamptz{Time: created, Valid: true},
	})
	require.NoError(t, err)
	return post
}

func feedQuery(seed string) *model.CategoryFeedQuery {
	return &model.CategoryFeedQuery{
		Category:    "technology",
		SessionSeed: seed,
	}
}

func postIDs(items []*model.FeedItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.PostID)
	}
	return ids
}

func TestFeedService_CategoryFeed_BandPartitioning(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	fresh := fx.seedPost(t, fx.seedUser(t, "alice").ID, 1*time.Hour)
	mid := fx.seedPost(t, fx.seedUser(t, "bob").ID, 5*time.Hour)
	old := fx.seedPost(t, fx.seedUser(t, "carol").ID, 20*time.Hour)
	fx.seedPost(t, fx.seedUser(t, "dave").ID, 60*time.Hour) // beyond the deepest window

	page, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("seed"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{fresh.ID, mid.ID, old.ID}, postIDs(page.Posts))
	assert.False(t, page.HasMore)

	require.NotNil(t, page.NextCursor.B1)
	require.NotNil(t, page.NextCursor.B2)
	require.NotNil(t, page.NextCursor.B3)
	assert.True(t, page.NextCursor.B1.Equal(fresh.CreatedAt.Time))
	assert.True(t, page.NextCursor.B2.Equal(mid.CreatedAt.Time))
	assert.True(t, page.NextCursor.B3.Equal(old.CreatedAt.Time))

	require.NotNil(t, page.LastSeen)
	assert.True(t, page.LastSeen.Equal(fresh.CreatedAt.Time))
}

func TestFeedService_CategoryFeed_SeedDeterminism(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		fx.seedPost(t, fx.seedUser(t, fmt.Sprintf("user%d", i)).ID, time.Duration(i+1)*10*time.Minute)
	}

	first, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("session-a"))
	require.NoError(t, err)
	second, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("session-a"))
	require.NoError(t, err)
	assert.Equal(t, postIDs(first.Posts), postIDs(second.Posts))

	other, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("session-b"))
	require.NoError(t, err)
	assert.ElementsMatch(t, postIDs(first.Posts), postIDs(other.Posts))
}

func TestFeedService_CategoryFeed_CreatorCap(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	prolific := fx.seedUser(t, "prolific")
	for i := 0; i < 5; i++ {
		fx.seedPost(t, prolific.ID, time.Duration(i+1)*5*time.Minute)
	}
	quiet := fx.seedPost(t, fx.seedUser(t, "quiet").ID, 40*time.Minute)

	page, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("seed"))
	require.NoError(t, err)

	fromProlific := 0
	for _, item := range page.Posts {
		if item.UserID == prolific.ID {
			fromProlific++
		}
	}
	assert.Equal(t, 1, fromProlific)
	assert.Contains(t, postIDs(page.Posts), quiet.ID)
}

func TestFeedService_CategoryFeed_CursorPagination(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	// Spaced so the trailing pair stays above the buffer floor the
	// second request derives from the first page's last_seen.
	var seeded []*model.Post
	for i := 0; i < 10; i++ {
		p := fx.seedPost(t, fx.seedUser(t, fmt.Sprintf("author%d", i)).ID, time.Duration(i+1)*3*time.Minute)
		seeded = append(seeded, p)
	}

	first, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("seed"))
	require.NoError(t, err)
	require.Len(t, first.Posts, Band1Limit)

	// The continuation point is the oldest post of the raw fetch, which
	// the shuffle must not move: the eight newest were fetched, so the
	// cursor sits on the eighth newest.
	require.NotNil(t, first.NextCursor.B1)
	assert.True(t, first.NextCursor.B1.Equal(seeded[7].CreatedAt.Time))

	next := feedQuery("seed")
	next.Cursor = first.NextCursor
	next.LastSeen = first.LastSeen
	second, err := fx.svc.CategoryFeed(ctx, "viewer", next)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{seeded[8].ID, seeded[9].ID}, postIDs(second.Posts))
	for _, id := range postIDs(second.Posts) {
		assert.NotContains(t, postIDs(first.Posts), id)
	}
}

func TestFeedService_CategoryFeed_BurstWithinOneBand(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		fx.seedPost(t, fx.seedUser(t, fmt.Sprintf("burst%d", i)).ID, time.Duration(i+1)*3*time.Minute)
	}

	page, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("seed"))
	require.NoError(t, err)

	assert.Len(t, page.Posts, Band1Limit)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor.B2)
	assert.Nil(t, page.NextCursor.B3)
}

func TestFeedService_CategoryFeed_EmptyBandKeepsCursor(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	fx.seedPost(t, fx.seedUser(t, "alice").ID, 1*time.Hour)

	b2Cursor := fx.now.Add(-6 * time.Hour)
	query := feedQuery("seed")
	query.Cursor.B2 = &b2Cursor

	page, err := fx.svc.CategoryFeed(ctx, "viewer", query)
	require.NoError(t, err)

	require.NotNil(t, page.NextCursor.B2)
	assert.True(t, page.NextCursor.B2.Equal(b2Cursor))
}

func TestFeedService_CategoryFeed_FallbackWhenBandsEmpty(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	stale := fx.seedPost(t, fx.seedUser(t, "archivist").ID, 90*time.Hour)

	page, err := fx.svc.CategoryFeed(ctx, "viewer", feedQuery("seed"))
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Equal(t, stale.ID, page.Posts[0].PostID)
	assert.False(t, page.HasMore)
}

func TestFeedService_CategoryFeed_LastSeenBuffer(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	// The buffer floor sits 45 minutes behind last_seen: a post inserted
	// just before the client's watermark stays visible, anything older
	// than the floor is done with.
	aboveFloor := fx.seedPost(t, fx.seedUser(t, "alice").ID, 10*time.Minute)
	belowFloor := fx.seedPost(t, fx.seedUser(t, "bob").ID, 1*time.Hour)

	query := feedQuery("seed")
	lastSeen := fx.now
	query.LastSeen = &lastSeen

	page, err := fx.svc.CategoryFeed(ctx, "viewer", query)
	require.NoError(t, err)

	ids := postIDs(page.Posts)
	assert.Contains(t, ids, aboveFloor.ID)
	assert.NotContains(t, ids, belowFloor.ID)
}

func TestFeedService_CategoryFeed_FallbackIgnoresCursor(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	stale := fx.seedPost(t, fx.seedUser(t, "archivist").ID, 90*time.Hour)

	// A B3 cursor older than every post would starve a cursor-bound
	// query; the fallback must still fill the page.
	b3Cursor := fx.now.Add(-100 * time.Hour)
	query := feedQuery("seed")
	query.Cursor.B3 = &b3Cursor

	page, err := fx.svc.CategoryFeed(ctx, "viewer", query)
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Equal(t, stale.ID, page.Posts[0].PostID)
}

func TestFeedService_CategoryFeed_EmptyPageKeepsLastSeen(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	query := feedQuery("seed")
	lastSeen := fx.now.Add(-30 * time.Minute)
	query.LastSeen = &lastSeen

	page, err := fx.svc.CategoryFeed(ctx, "viewer", query)
	require.NoError(t, err)

	assert.Empty(t, page.Posts)
	require.NotNil(t, page.LastSeen)
	assert.True(t, page.LastSeen.Equal(lastSeen))
}

func TestFeedService_CategoryFeed_Enrichment(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	author := fx.seedUser(t, "author")
	viewer := fx.seedUser(t, "viewer")
	other := fx.seedUser(t, "other")

	debated := fx.seedPost(t, author.ID, 1*time.Hour)
	silent := fx.seedPost(t, other.ID, 90*time.Minute)

	err := fx.images.Attach(ctx, debated.ID, []*model.PostImage{
		{PostID: debated.ID, URL: "https://cdn.example.com/b.jpg", Position: 2},
		{PostID: debated.ID, URL: "https://cdn.example.com/a.jpg", Position: 1},
	})
	require.NoError(t, err)

	_, err = fx.likes.Create(ctx, &model.Like{PostID: debated.ID, UserID: viewer.ID})
	require.NoError(t, err)
	_, err = fx.likes.Create(ctx, &model.Like{PostID: debated.ID, UserID: other.ID})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = fx.comments.Create(ctx, &model.Comment{
			PostID: debated.ID, UserID: other.ID,
			Text: "agreed", For: model.CommentForSupport,
		})
		require.NoError(t, err)
	}
	_, err = fx.comments.Create(ctx, &model.Comment{
		PostID: debated.ID, UserID: viewer.ID,
		Text: "disagree", For: model.CommentForDeny,
	})
	require.NoError(t, err)

	page, err := fx.svc.CategoryFeed(ctx, viewer.ID, feedQuery("seed"))
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	var got, plain *model.FeedItem
	for _, item := range page.Posts {
		switch item.PostID {
		case debated.ID:
			got = item
		case silent.ID:
			plain = item
		}
	}
	require.NotNil(t, got)
	require.NotNil(t, plain)

	assert.Equal(t, "author", got.Username)
	require.NotNil(t, got.CategoryTitle)
	assert.Equal(t, "technology", *got.CategoryTitle)
	assert.Equal(t, 2, got.LikesCount)
	assert.True(t, got.LikedByCurrentUser)
	assert.Equal(t, 4, got.CommentsCount)
	assert.Equal(t, 3, got.SupportCount)
	assert.Equal(t, 1, got.DenyCount)
	assert.Equal(t, 75.0, got.SupportPercentage)
	assert.Equal(t, 25.0, got.DenyPercentage)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://cdn.example.com/a.jpg", got.Images[0].URL)
	assert.Equal(t, "https://cdn.example.com/b.jpg", got.Images[1].URL)

	assert.Equal(t, 0, plain.CommentsCount)
	assert.Equal(t, 0.0, plain.SupportPercentage)
	assert.Equal(t, 0.0, plain.DenyPercentage)
	assert.False(t, plain.LikedByCurrentUser)
	assert.Empty(t, plain.Images)
}

func TestFeedService_CategoryFeed_UnknownCategory(t *testing.T) {
	fx := newFeedFixture(t)

	query := feedQuery("seed")
	query.Category = "no-such-category"

	_, err := fx.svc.CategoryFeed(context.Background(), "viewer", query)
	assert.ErrorIs(t, err, custom_errors.ErrCategoryNotFound)
}

func TestFeedService_HomeFeed(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	viewer := fx.seedUser(t, "viewer")
	followed := fx.seedUser(t, "followed")
	stranger := fx.seedUser(t, "stranger")

	followedPost := fx.seedPost(t, followed.ID, 1*time.Hour)
	strangerPost := fx.seedPost(t, stranger.ID, 30*time.Minute)

	err := fx.follows.Create(ctx, &model.Follow{FollowerID: viewer.ID, FollowingID: followed.ID})
	require.NoError(t, err)

	items, err := fx.svc.HomeFeed(ctx, viewer.ID, 0, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, followedPost.ID, items[0].PostID)

	// A viewer following nobody falls back to trending.
	lonely := fx.seedUser(t, "lonely")
	items, err = fx.svc.HomeFeed(ctx, lonely.ID, 0, 20)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{followedPost.ID, strangerPost.ID}, postIDs(items))
}

func TestFeedService_TrendingByCategory(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		fx.seedPost(t, fx.seedUser(t, fmt.Sprintf("trend%d", i)).ID, time.Duration(i+1)*time.Hour)
	}

	items, err := fx.svc.TrendingByCategory(ctx, "viewer", "technology")
	require.NoError(t, err)
	assert.Len(t, items, trendingPageSize)
}

func TestFeedService_RandomCategoryFeed_ExcludesSeen(t *testing.T) {
	fx := newFeedFixture(t)
	ctx := context.Background()

	seen := fx.seedPost(t, fx.seedUser(t, "alice").ID, 1*time.Hour)
	unseen := fx.seedPost(t, fx.seedUser(t, "bob").ID, 2*time.Hour)

	items, err := fx.svc.RandomCategoryFeed(ctx, "viewer", "technology", []string{seen.ID}, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, unseen.ID, items[0].PostID)
}

func TestStancePercentages(t *testing.T) {
	tests := []struct {
		name        string
		support     int
		deny        int
		wantSupport float64
		wantDeny    float64
	}{
		{name: "three to one", support: 3, deny: 1, wantSupport: 75, wantDeny: 25},
		{name: "no comments", support: 0, deny: 0, wantSupport: 0, wantDeny: 0},
		{name: "all support", support: 4, deny: 0, wantSupport: 100, wantDeny: 0},
		{name: "thirds are rounded", support: 2, deny: 1, wantSupport: 66.67, wantDeny: 33.33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d := stancePercentages(tt.support, tt.deny)
			assert.Equal(t, tt.wantSupport, s)
			assert.Equal(t, tt.wantDeny, d)
		})
	}
}

func TestShufflePosts_Deterministic(t *testing.T) {
	build := func() []*model.Post {
		posts := make([]*model.Post, 0, 10)
		for i := 0; i < 10; i++ {
			posts = append(posts, &model.Post{ID: fmt.Sprintf("p%d", i)})
		}
		return posts
	}

	a := build()
	b := build()
	shufflePosts(a, "seed_b1")
	shufflePosts(b, "seed_b1")
	assert.Equal(t, a, b)
}
