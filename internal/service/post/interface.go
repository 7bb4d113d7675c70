package post_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, viewerID string, id string) (*model.PostDetailed, error)
	ListByUser(ctx context.Context, viewerID string, userID string, offset, limit int) ([]*model.PostDetailed, error)
	UpdatePost(ctx context.Context, userID string, id string, update *model.UpdatePostDTO) (*model.Post, error)
	DeletePost(ctx context.Context, userID string, id string) error
}
