package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

type followKey struct {
	followerID  string
	followingID string
}

type FollowRepository struct {
	log     *logger.Logger
	mu      sync.RWMutex
	follows map[followKey]*model.Follow
}

func NewFollowRepository(log *logger.Logger) *FollowRepository {
	return &FollowRepository{
		log:     log,
		follows: make(map[followKey]*model.Follow),
	}
}

func (r *FollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{followerID: follow.FollowerID, followingID: follow.FollowingID}
	if _, exists := r.follows[key]; exists {
		return nil
	}

	created := *follow
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	created.CreatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	r.follows[key] = &created
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := followKey{followerID: followerID, followingID: followingID}
	if _, exists := r.follows[key]; !exists {
		return custom_errors.ErrFollowNotFound
	}
	delete(r.follows, key)
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.follows[followKey{followerID: followerID, followingID: followingID}]
	return exists, nil
}

func (r *FollowRepository) ListFollowerIDs(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	return r.listIDs(func(f *model.Follow) (string, bool) {
		return f.FollowerID, f.FollowingID == userID
	}, offset, limit)
}

func (r *FollowRepository) ListFollowingIDs(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	return r.listIDs(func(f *model.Follow) (string, bool) {
		return f.FollowingID, f.FollowerID == userID
	}, offset, limit)
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	return r.listIDs(func(f *model.Follow) (string, bool) {
		return f.FollowingID, f.FollowerID == userID
	}, 0, 0)
}

func (r *FollowRepository) listIDs(pick func(*model.Follow) (string, bool), offset, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.Follow
	for _, follow := range r.follows {
		if _, ok := pick(follow); ok {
			matched = append(matched, follow)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.Time.After(matched[j].CreatedAt.Time)
	})

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	ids := make([]string, len(matched))
	for i, follow := range matched {
		ids[i], _ = pick(follow)
	}
	return ids, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.follows {
		if key.followingID == userID {
			count++
		}
	}
	return count, nil
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.follows {
		if key.followerID == userID {
			count++
		}
	}
	return count, nil
}
