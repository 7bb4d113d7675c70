package user_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

// Profile is a user's public page: the profile fields plus the counts
// shown in its header.
type Profile struct {
	User           *model.User `json:"user"`
	PostsCount     int         `json:"posts_count"`
	FollowersCount int         `json:"followers_count"`
	FollowingCount int         `json:"following_count"`
	FollowedByMe   bool        `json:"followed_by_me"`
}

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename UserService.go
type Service interface {
	GetProfile(ctx context.Context, viewerID string, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, update *model.UpdateUserDTO) (*model.User, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}
