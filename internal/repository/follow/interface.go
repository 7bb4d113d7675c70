package follow_repository

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	// Create inserts a follow edge; repeated follows are an idempotent
	// no-op, self-follows are rejected at the service layer.
	Create(ctx context.Context, follow *model.Follow) error
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowerIDs(ctx context.Context, userID string, offset, limit int) ([]string, error)
	ListFollowingIDs(ctx context.Context, userID string, offset, limit int) ([]string, error)
	// FollowingIDs returns the full unpaginated id set for feed fan-in.
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)
}
