package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

type PostImageRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	images map[string][]*model.PostImage // keyed by post id
}

func NewPostImageRepository(log *logger.Logger) *PostImageRepository {
	return &PostImageRepository{
		log:    log,
		images: make(map[string][]*model.PostImage),
	}
}

func (r *PostImageRepository) Attach(ctx context.Context, postID string, images []*model.PostImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	for _, image := range images {
		imageCopy := *image
		if imageCopy.ID == "" {
			imageCopy.ID = uuid.New().String()
		}
		imageCopy.PostID = postID
		imageCopy.CreatedAt = now
		r.images[postID] = append(r.images[postID], &imageCopy)
	}

	sort.Slice(r.images[postID], func(i, j int) bool {
		return r.images[postID][i].Position < r.images[postID][j].Position
	})
	return nil
}

func (r *PostImageRepository) GetByPost(ctx context.Context, postID string) ([]*model.PostImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.PostImage
	for _, image := range r.images[postID] {
		imageCopy := *image
		result = append(result, &imageCopy)
	}
	return result, nil
}

func (r *PostImageRepository) GetByPosts(ctx context.Context, postIDs []string) ([]*model.PostImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.PostImage
	for _, postID := range postIDs {
		for _, image := range r.images[postID] {
			imageCopy := *image
			result = append(result, &imageCopy)
		}
	}
	return result, nil
}

func (r *PostImageRepository) DeleteByPost(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.images, postID)
	return nil
}
