package follow_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename FollowService.go
type Service interface {
	// Follow creates the edge; following someone twice is a no-op,
	// following yourself is rejected.
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	// IsMutual reports whether both follow edges exist.
	IsMutual(ctx context.Context, userA, userB string) (bool, error)
	Followers(ctx context.Context, userID string, offset, limit int) ([]*model.UserProfile, error)
	Following(ctx context.Context, userID string, offset, limit int) ([]*model.UserProfile, error)
	// Suggestions returns users the viewer does not follow yet.
	Suggestions(ctx context.Context, viewerID string, limit int) ([]*model.UserProfile, error)
}
