package like_service

import (
	"context"
	"log/slog"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	like_repository "pulsefeed-backend/internal/repository/like"
	post_repository "pulsefeed-backend/internal/repository/post"
	user_repository "pulsefeed-backend/internal/repository/user"
)

type LikeService struct {
	likeRepo like_repository.Repository
	postRepo post_repository.Repository
	userRepo user_repository.Repository
	log      *logger.Logger
}

func NewLikeService(
	likeRepo like_repository.Repository,
	postRepo post_repository.Repository,
	userRepo user_repository.Repository,
	log *logger.Logger,
) *LikeService {
	return &LikeService{
		likeRepo: likeRepo,
		postRepo: postRepo,
		userRepo: userRepo,
		log:      log,
	}
}

func (s *LikeService) LikePost(ctx context.Context, postID, userID string) (*model.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	like, err := s.likeRepo.Create(ctx, &model.Like{PostID: postID, UserID: userID})
	if err != nil {
		s.log.Error("Failed to like post",
			slog.String("post_id", postID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return like, nil
}

func (s *LikeService) UnlikePost(ctx context.Context, postID, userID string) error {
	err := s.likeRepo.Delete(ctx, postID, userID)
	if err != nil {
		s.log.Error("Failed to unlike post",
			slog.String("post_id", postID),
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *LikeService) IsLiked(ctx context.Context, postID, userID string) (bool, error) {
	liked, err := s.likeRepo.Exists(ctx, postID, userID)
	if err != nil {
		s.log.Error("Failed to check like", slog.String("post_id", postID), slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return liked, nil
}

func (s *LikeService) LikeCount(ctx context.Context, postID string) (int, error) {
	count, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to count likes", slog.String("post_id", postID), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return count, nil
}

func (s *LikeService) UsersWhoLiked(ctx context.Context, postID string) ([]*model.UserProfile, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	userIDs, err := s.likeRepo.UsersWhoLiked(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list likers", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if len(userIDs) == 0 {
		return []*model.UserProfile{}, nil
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		s.log.Error("Failed to load liker profiles", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	profiles := make([]*model.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, &model.UserProfile{
			ID:            u.ID,
			Username:      u.Username,
			FullName:      u.FullName,
			ProfileImgURL: u.ProfileImgURL,
		})
	}
	return profiles, nil
}
