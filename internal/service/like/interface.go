package like_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename LikeService.go
type Service interface {
	LikePost(ctx context.Context, postID, userID string) (*model.Like, error)
	UnlikePost(ctx context.Context, postID, userID string) error
	IsLiked(ctx context.Context, postID, userID string) (bool, error)
	LikeCount(ctx context.Context, postID string) (int, error)
	// UsersWhoLiked lists the public profiles of a post's likers.
	UsersWhoLiked(ctx context.Context, postID string) ([]*model.UserProfile, error)
}
