package follow_service

import (
	"context"
	"log/slog"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	follow_repository "pulsefeed-backend/internal/repository/follow"
	user_repository "pulsefeed-backend/internal/repository/user"
)

type FollowService struct {
	followRepo follow_repository.Repository
	userRepo   user_repository.Repository
	log        *logger.Logger
}

func NewFollowService(
	followRepo follow_repository.Repository,
	userRepo user_repository.Repository,
	log *logger.Logger,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return custom_errors.ErrSelfFollow
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}

	err := s.followRepo.Create(ctx, &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
	if err != nil {
		s.log.Error("Failed to create follow",
			slog.String("follower_id", followerID),
			slog.String("following_id", followingID),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		s.log.Error("Failed to delete follow",
			slog.String("follower_id", followerID),
			slog.String("following_id", followingID),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	following, err := s.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		s.log.Error("Failed to check follow", slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return following, nil
}

func (s *FollowService) IsMutual(ctx context.Context, userA, userB string) (bool, error) {
	forward, err := s.IsFollowing(ctx, userA, userB)
	if err != nil || !forward {
		return false, err
	}
	return s.IsFollowing(ctx, userB, userA)
}

func (s *FollowService) Followers(ctx context.Context, userID string, offset, limit int) ([]*model.UserProfile, error) {
	ids, err := s.followRepo.ListFollowerIDs(ctx, userID, offset, limit)
	if err != nil {
		s.log.Error("Failed to list followers", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.profiles(ctx, ids)
}

func (s *FollowService) Following(ctx context.Context, userID string, offset, limit int) ([]*model.UserProfile, error) {
	ids, err := s.followRepo.ListFollowingIDs(ctx, userID, offset, limit)
	if err != nil {
		s.log.Error("Failed to list following", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.profiles(ctx, ids)
}

func (s *FollowService) Suggestions(ctx context.Context, viewerID string, limit int) ([]*model.UserProfile, error) {
	followingIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		s.log.Error("Failed to load following set", slog.String("viewer_id", viewerID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	exclude := append(followingIDs, viewerID)
	users, err := s.userRepo.Suggested(ctx, exclude, limit)
	if err != nil {
		s.log.Error("Failed to load suggestions", slog.String("viewer_id", viewerID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	profiles := make([]*model.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, profileOf(u))
	}
	return profiles, nil
}

func (s *FollowService) profiles(ctx context.Context, ids []string) ([]*model.UserProfile, error) {
	if len(ids) == 0 {
		return []*model.UserProfile{}, nil
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load profiles", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	profiles := make([]*model.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, profileOf(u))
	}
	return profiles, nil
}

func profileOf(u *model.User) *model.UserProfile {
	return &model.UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		FullName:      u.FullName,
		ProfileImgURL: u.ProfileImgURL,
	}
}
