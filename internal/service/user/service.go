package user_service

import (
	"context"
	"log/slog"
	"strings"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	follow_repository "pulsefeed-backend/internal/repository/follow"
	post_repository "pulsefeed-backend/internal/repository/post"
	user_repository "pulsefeed-backend/internal/repository/user"
)

type UserService struct {
	userRepo   user_repository.Repository
	postRepo   post_repository.Repository
	followRepo follow_repository.Repository
	log        *logger.Logger
}

func NewUserService(
	userRepo user_repository.Repository,
	postRepo post_repository.Repository,
	followRepo follow_repository.Repository,
	log *logger.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
		log:        log,
	}
}

func (s *UserService) GetProfile(ctx context.Context, viewerID string, userID string) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}

	profile.PostsCount, err = s.postRepo.CountByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count posts", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	profile.FollowersCount, err = s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count followers", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	profile.FollowingCount, err = s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count following", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if viewerID != "" && viewerID != userID {
		profile.FollowedByMe, err = s.followRepo.Exists(ctx, viewerID, userID)
		if err != nil {
			s.log.Error("Failed to check follow", slog.String("user_id", userID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, update *model.UpdateUserDTO) (*model.User, error) {
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username == "" {
			return nil, custom_errors.ErrUsernameTaken
		}
		current, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(current.Username, username) {
			taken, err := s.userRepo.UsernameExists(ctx, username)
			if err != nil {
				s.log.Error("Failed to check username", slog.String("error", err.Error()))
				return nil, custom_errors.ErrDatabaseQuery
			}
			if taken {
				return nil, custom_errors.ErrUsernameTaken
			}
		}
		update.Username = &username
	}

	user, err := s.userRepo.Update(ctx, userID, update)
	if err != nil {
		s.log.Error("Failed to update user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return user, nil
}

func (s *UserService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		s.log.Error("Failed to check username", slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return !taken, nil
}
