package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

type PostRepository struct {
	log   *logger.Logger
	mu    sync.RWMutex
	posts map[string]*model.Post
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:   log,
		posts: make(map[string]*model.Post),
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	newPost := *post
	if newPost.ID == "" {
		newPost.ID = uuid.New().String()
	}
	// Preset timestamps are honored so tests can place posts in time.
	if !newPost.CreatedAt.Valid {
		newPost.CreatedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}
	}
	if !newPost.ModifiedAt.Valid {
		newPost.ModifiedAt = newPost.CreatedAt
	}

	p.posts[newPost.ID] = &newPost

	result := newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.String("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, id := range ids {
		if post, ok := p.posts[id]; ok {
			postCopy := *post
			result = append(result, &postCopy)
		}
	}
	return result, nil
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}
	if update.Title == nil && update.Content == nil {
		return nil, custom_errors.ErrNoUpdateRows
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = update.Content
	}
	post.ModifiedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *post
	return &result, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}
	delete(p.posts, id)
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []*model.Post
	for _, post := range p.posts {
		if !matches(post, filters) {
			continue
		}
		postCopy := *post
		result = append(result, &postCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Time.After(result[j].CreatedAt.Time)
	})

	if filters.Offset != nil {
		if *filters.Offset >= len(result) {
			return nil, nil
		}
		result = result[*filters.Offset:]
	}
	if filters.Limit != nil && len(result) > *filters.Limit {
		result = result[:*filters.Limit]
	}

	return result, nil
}

func matches(post *model.Post, filters model.PostFilters) bool {
	if filters.CategoryID != nil && post.CategoryID != *filters.CategoryID {
		return false
	}
	if len(filters.UserIDs) > 0 && !contains(filters.UserIDs, post.UserID) {
		return false
	}
	created := post.CreatedAt.Time
	if filters.CreatedAfter != nil && created.Before(filters.CreatedAfter.Time) {
		return false
	}
	if filters.CreatedBefore != nil && !created.Before(filters.CreatedBefore.Time) {
		return false
	}
	if filters.CursorBefore != nil && !created.Before(filters.CursorBefore.Time) {
		return false
	}
	if len(filters.ExcludeIDs) > 0 && contains(filters.ExcludeIDs, post.ID) {
		return false
	}
	return true
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

func (p *PostRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	count := 0
	for _, post := range p.posts {
		if post.UserID == userID {
			count++
		}
	}
	return count, nil
}

// TrendingIDs approximates the database ranking function with plain
// recency, which is enough for tests against this repository.
func (p *PostRepository) TrendingIDs(ctx context.Context, offset, limit int) ([]string, error) {
	posts, err := p.List(ctx, model.PostFilters{Offset: &offset, Limit: &limit})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	return ids, nil
}

func (p *PostRepository) TrendingIDsByCategory(ctx context.Context, categoryID string, limit int) ([]string, error) {
	posts, err := p.List(ctx, model.PostFilters{CategoryID: &categoryID, Limit: &limit})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	return ids, nil
}
