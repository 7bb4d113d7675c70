package search_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	user_memory "pulsefeed-backend/internal/repository/user/memory"
)

// rowsRepo pins the raw search rows so the merge logic can be driven
// with both ranking arms present.
type rowsRepo struct {
	*user_memory.UserRepository
	rows []*model.UserSearchRow
}

func (r *rowsRepo) Search(ctx context.Context, query model.UserSearchQuery) ([]*model.UserSearchRow, error) {
	return r.rows, nil
}

func floatPtr(v float64) *float64 { return &v }

func seedSearchUser(t *testing.T, users *user_memory.UserRepository, username string) *model.User {
	t.Helper()
	user, err := users.Create(context.Background(), &model.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
	})
	require.NoError(t, err)
	return user
}

func TestSearchService_SearchUsers(t *testing.T) {
	t.Run("blank query returns empty page", func(t *testing.T) {
		log := logger.New("test")
		svc := NewSearchService(user_memory.NewUserRepository(log), log)

		page, err := svc.SearchUsers(context.Background(), model.UserSearchQuery{Query: "   "})
		require.NoError(t, err)
		assert.Empty(t, page.Users)
		assert.Nil(t, page.NextRank)
		assert.Nil(t, page.NextSimilarity)
	})

	t.Run("substring match against the store", func(t *testing.T) {
		log := logger.New("test")
		users := user_memory.NewUserRepository(log)
		svc := NewSearchService(users, log)
		seedSearchUser(t, users, "ada_lovelace")
		seedSearchUser(t, users, "grace_hopper")

		page, err := svc.SearchUsers(context.Background(), model.UserSearchQuery{Query: "ada"})
		require.NoError(t, err)
		require.Len(t, page.Users, 1)
		assert.Equal(t, "ada_lovelace", page.Users[0].Username)
		require.NotNil(t, page.Users[0].Score)
	})

	t.Run("merges duplicate rows and keeps both scores", func(t *testing.T) {
		log := logger.New("test")
		users := user_memory.NewUserRepository(log)
		ada := seedSearchUser(t, users, "ada_lovelace")
		grace := seedSearchUser(t, users, "grace_hopper")

		repo := &rowsRepo{UserRepository: users, rows: []*model.UserSearchRow{
			{UserID: ada.ID, Rank: floatPtr(0.8)},
			{UserID: grace.ID, Rank: floatPtr(0.5)},
			{UserID: ada.ID, Similarity: floatPtr(0.9)},
			{UserID: grace.ID, Similarity: floatPtr(0.3)},
		}}
		svc := NewSearchService(repo, log)

		page, err := svc.SearchUsers(context.Background(), model.UserSearchQuery{Query: "a"})
		require.NoError(t, err)
		require.Len(t, page.Users, 2)

		first := page.Users[0]
		assert.Equal(t, ada.ID, first.UserID)
		require.NotNil(t, first.Rank)
		require.NotNil(t, first.Similarity)
		assert.Equal(t, 0.8, *first.Rank)
		assert.Equal(t, 0.9, *first.Similarity)
		assert.Equal(t, 0.9, *first.Score)

		second := page.Users[1]
		assert.Equal(t, grace.ID, second.UserID)
		assert.Equal(t, 0.5, *second.Score)
	})

	t.Run("next cursors are the page minima", func(t *testing.T) {
		log := logger.New("test")
		users := user_memory.NewUserRepository(log)
		ada := seedSearchUser(t, users, "ada_lovelace")
		grace := seedSearchUser(t, users, "grace_hopper")

		repo := &rowsRepo{UserRepository: users, rows: []*model.UserSearchRow{
			{UserID: ada.ID, Rank: floatPtr(0.8), Similarity: nil},
			{UserID: grace.ID, Rank: floatPtr(0.5)},
			{UserID: ada.ID, Similarity: floatPtr(0.9)},
			{UserID: grace.ID, Similarity: floatPtr(0.3)},
		}}
		svc := NewSearchService(repo, log)

		page, err := svc.SearchUsers(context.Background(), model.UserSearchQuery{Query: "a"})
		require.NoError(t, err)
		require.NotNil(t, page.NextRank)
		require.NotNil(t, page.NextSimilarity)
		assert.Equal(t, 0.5, *page.NextRank)
		assert.Equal(t, 0.3, *page.NextSimilarity)
	})

	t.Run("rows for deleted users are skipped", func(t *testing.T) {
		log := logger.New("test")
		users := user_memory.NewUserRepository(log)
		ada := seedSearchUser(t, users, "ada_lovelace")

		repo := &rowsRepo{UserRepository: users, rows: []*model.UserSearchRow{
			{UserID: "vanished", Rank: floatPtr(0.9)},
			{UserID: ada.ID, Rank: floatPtr(0.4)},
		}}
		svc := NewSearchService(repo, log)

		page, err := svc.SearchUsers(context.Background(), model.UserSearchQuery{Query: "a"})
		require.NoError(t, err)
		require.Len(t, page.Users, 1)
		assert.Equal(t, ada.ID, page.Users[0].UserID)
	})
}

func TestBestScore(t *testing.T) {
	tests := []struct {
		name       string
		rank       *float64
		similarity *float64
		want       *float64
	}{
		{name: "both nil", rank: nil, similarity: nil, want: nil},
		{name: "rank only", rank: floatPtr(0.7), similarity: nil, want: floatPtr(0.7)},
		{name: "similarity only", rank: nil, similarity: floatPtr(0.4), want: floatPtr(0.4)},
		{name: "similarity wins", rank: floatPtr(0.2), similarity: floatPtr(0.6), want: floatPtr(0.6)},
		{name: "rank wins", rank: floatPtr(0.9), similarity: floatPtr(0.6), want: floatPtr(0.9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bestScore(tt.rank, tt.similarity)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
