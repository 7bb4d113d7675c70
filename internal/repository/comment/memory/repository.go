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

type CommentRepository struct {
	log      *logger.Logger
	mu       sync.RWMutex
	comments map[string]*model.Comment
}

func NewCommentRepository(log *logger.Logger) *CommentRepository {
	return &CommentRepository{
		log:      log,
		comments: make(map[string]*model.Comment),
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *comment
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	if !created.CreatedAt.Valid {
		created.CreatedAt = now
	}
	created.ModifiedAt = created.CreatedAt
	r.comments[created.ID] = &created

	result := created
	return &result, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, exists := r.comments[id]
	if !exists {
		r.log.Debug("Comment not found by id", slog.String("id", id))
		return nil, custom_errors.ErrCommentNotFound
	}
	result := *comment
	return &result, nil
}

func (r *CommentRepository) Update(ctx context.Context, id string, text string, commentFor model.CommentFor) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, exists := r.comments[id]
	if !exists {
		return nil, custom_errors.ErrCommentNotFound
	}
	comment.Text = text
	comment.For = commentFor
	comment.ModifiedAt = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	result := *comment
	return &result, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comments[id]; !exists {
		return custom_errors.ErrCommentNotFound
	}
	for replyID, reply := range r.comments {
		if reply.ParentCommentID != nil && *reply.ParentCommentID == id {
			delete(r.comments, replyID)
		}
	}
	delete(r.comments, id)
	return nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, comment := range r.comments {
		if comment.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID && comment.ParentCommentID == nil {
			commentCopy := *comment
			result = append(result, &commentCopy)
		}
	}
	return paginate(result, offset, limit), nil
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID string, offset, limit int) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Comment
	for _, comment := range r.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == parentID {
			commentCopy := *comment
			result = append(result, &commentCopy)
		}
	}
	return paginate(result, offset, limit), nil
}

func paginate(comments []*model.Comment, offset, limit int) []*model.Comment {
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Time.Before(comments[j].CreatedAt.Time)
	})
	if offset >= len(comments) {
		return nil
	}
	comments = comments[offset:]
	if limit > 0 && len(comments) > limit {
		comments = comments[:limit]
	}
	return comments
}

func (r *CommentRepository) CountReplies(ctx context.Context, parentID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, comment := range r.comments {
		if comment.ParentCommentID != nil && *comment.ParentCommentID == parentID {
			count++
		}
	}
	return count, nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, comment := range r.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *CommentRepository) StanceByPosts(ctx context.Context, postIDs []string) ([]*model.CommentStance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idSet := make(map[string]struct{}, len(postIDs))
	for _, id := range postIDs {
		idSet[id] = struct{}{}
	}

	tallies := make(map[string]*model.CommentStance)
	for _, comment := range r.comments {
		if _, ok := idSet[comment.PostID]; !ok {
			continue
		}
		stance, ok := tallies[comment.PostID]
		if !ok {
			stance = &model.CommentStance{PostID: comment.PostID}
			tallies[comment.PostID] = stance
		}
		switch comment.For {
		case model.CommentForSupport:
			stance.Support++
		case model.CommentForDeny:
			stance.Deny++
		}
	}

	var result []*model.CommentStance
	for _, stance := range tallies {
		result = append(result, stance)
	}
	return result, nil
}
