package comment_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type CreateCommentDTO struct {
	PostID          string           `json:"post_id"`
	UserID          string           `json:"user_id"`
	ParentCommentID *string          `json:"parent_comment_id,omitempty"`
	Text            string           `json:"comment_text"`
	For             model.CommentFor `json:"comment_for"`
}

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename CommentService.go
type Service interface {
	CreateComment(ctx context.Context, dto *CreateCommentDTO) (*model.Comment, error)
	UpdateComment(ctx context.Context, userID string, id string, text string, commentFor model.CommentFor) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID string, id string) error
	// ListForPost returns top-level comments with a short preview of
	// replies under each; the rest are fetched through ListReplies.
	ListForPost(ctx context.Context, viewerID string, postID string, offset, limit int) ([]*model.CommentView, error)
	ListReplies(ctx context.Context, viewerID string, parentID string, offset, limit int) ([]*model.CommentView, error)
}
