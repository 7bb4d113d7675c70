package cache

import (
	"context"

	"pulsefeed-backend/internal/model"
)

//go:generate mockery --name PostCache --dir . --output ../../mocks --outpkg mocks --with-expecter --filename PostCache.go
type PostCache interface {
	GetPost(ctx context.Context, postID string) (*model.PostDetailed, error)
	SetPost(ctx context.Context, post *model.PostDetailed) error
	DeletePost(ctx context.Context, postID string) error
}
