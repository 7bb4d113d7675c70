package follow_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	follow_memory "pulsefeed-backend/internal/repository/follow/memory"
	user_memory "pulsefeed-backend/internal/repository/user/memory"
)

type followFixture struct {
	svc     *FollowService
	follows *follow_memory.FollowRepository
	users   *user_memory.UserRepository
}

func newFollowFixture(t *testing.T) *followFixture {
	t.Helper()
	log := logger.New("test")

	fx := &followFixture{
		follows: follow_memory.NewFollowRepository(log),
		users:   user_memory.NewUserRepository(log),
	}
	fx.svc = NewFollowService(fx.follows, fx.users, log)
	return fx
}

func (fx *followFixture) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := fx.users.Create(context.Background(), &model.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
	})
	require.NoError(t, err)
	return user
}

func TestFollowService_Follow(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := newFollowFixture(t)
		alice := fx.seedUser(t, "alice")
		bob := fx.seedUser(t, "bob")

		require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))

		following, err := fx.svc.IsFollowing(context.Background(), alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		fx := newFollowFixture(t)
		alice := fx.seedUser(t, "alice")

		err := fx.svc.Follow(context.Background(), alice.ID, alice.ID)
		assert.ErrorIs(t, err, custom_errors.ErrSelfFollow)
	})

	t.Run("unknown target", func(t *testing.T) {
		fx := newFollowFixture(t)
		alice := fx.seedUser(t, "alice")

		err := fx.svc.Follow(context.Background(), alice.ID, "missing")
		assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
	})

	t.Run("repeat follow is idempotent", func(t *testing.T) {
		fx := newFollowFixture(t)
		alice := fx.seedUser(t, "alice")
		bob := fx.seedUser(t, "bob")

		require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))
		require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))

		count, err := fx.follows.CountFollowing(context.Background(), alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	fx := newFollowFixture(t)
	alice := fx.seedUser(t, "alice")
	bob := fx.seedUser(t, "bob")
	require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))

	require.NoError(t, fx.svc.Unfollow(context.Background(), alice.ID, bob.ID))

	following, err := fx.svc.IsFollowing(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	err = fx.svc.Unfollow(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, custom_errors.ErrFollowNotFound)
}

func TestFollowService_Listing(t *testing.T) {
	fx := newFollowFixture(t)
	alice := fx.seedUser(t, "alice")
	bob := fx.seedUser(t, "bob")
	carol := fx.seedUser(t, "carol")

	require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))
	require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, carol.ID))
	require.NoError(t, fx.svc.Follow(context.Background(), bob.ID, carol.ID))

	following, err := fx.svc.Following(context.Background(), alice.ID, 0, 10)
	require.NoError(t, err)
	names := make([]string, 0, len(following))
	for _, p := range following {
		names = append(names, p.Username)
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	followers, err := fx.svc.Followers(context.Background(), carol.ID, 0, 10)
	require.NoError(t, err)
	names = names[:0]
	for _, p := range followers {
		names = append(names, p.Username)
	}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)

	empty, err := fx.svc.Followers(context.Background(), alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFollowService_IsMutual(t *testing.T) {
	fx := newFollowFixture(t)
	alice := fx.seedUser(t, "alice")
	bob := fx.seedUser(t, "bob")

	require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))

	mutual, err := fx.svc.IsMutual(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, mutual)

	require.NoError(t, fx.svc.Follow(context.Background(), bob.ID, alice.ID))

	mutual, err = fx.svc.IsMutual(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, mutual)
}

func TestFollowService_Suggestions(t *testing.T) {
	fx := newFollowFixture(t)
	alice := fx.seedUser(t, "alice")
	bob := fx.seedUser(t, "bob")
	fx.seedUser(t, "carol")
	fx.seedUser(t, "dave")

	require.NoError(t, fx.svc.Follow(context.Background(), alice.ID, bob.ID))

	suggestions, err := fx.svc.Suggestions(context.Background(), alice.ID, 10)
	require.NoError(t, err)

	names := make([]string, 0, len(suggestions))
	for _, p := range suggestions {
		names = append(names, p.Username)
	}
	assert.ElementsMatch(t, []string{"carol", "dave"}, names)
}
