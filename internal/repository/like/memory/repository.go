package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

type likeKey struct {
	postID string
	userID string
}

type LikeRepository struct {
	log   *logger.Logger
	mu    sync.RWMutex
	likes map[likeKey]*model.Like
}

func NewLikeRepository(log *logger.Logger) *LikeRepository {
	return &LikeRepository{
		log:   log,
		likes: make(map[likeKey]*model.Like),
	}
}

func (r *LikeRepository) Create(ctx context.Context, like *model.Like) (*model.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likeKey{postID: like.PostID, userID: like.UserID}
	if _, exists := r.likes[key]; exists {
		return nil, custom_errors.ErrAlreadyLiked
	}

	created := *like
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	created.CreatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	r.likes[key] = &created

	result := created
	return &result, nil
}

func (r *LikeRepository) Delete(ctx context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likeKey{postID: postID, userID: userID}
	if _, exists := r.likes[key]; !exists {
		return custom_errors.ErrLikeNotFound
	}
	delete(r.likes, key)
	return nil
}

func (r *LikeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.likes[likeKey{postID: postID, userID: userID}]
	return exists, nil
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (r *LikeRepository) GetByPosts(ctx context.Context, postIDs []string) ([]*model.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idSet := make(map[string]struct{}, len(postIDs))
	for _, id := range postIDs {
		idSet[id] = struct{}{}
	}

	var result []*model.Like
	for key, like := range r.likes {
		if _, ok := idSet[key.postID]; ok {
			likeCopy := *like
			result = append(result, &likeCopy)
		}
	}
	return result, nil
}

func (r *LikeRepository) UsersWhoLiked(ctx context.Context, postID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var userIDs []string
	for key := range r.likes {
		if key.postID == postID {
			userIDs = append(userIDs, key.userID)
		}
	}
	return userIDs, nil
}

func (r *LikeRepository) DeleteByPost(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.likes {
		if key.postID == postID {
			delete(r.likes, key)
		}
	}
	return nil
}
