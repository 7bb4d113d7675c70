package comment_service

import (
	"context"
	"log/slog"
	"strings"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	comment_repository "pulsefeed-backend/internal/repository/comment"
	post_repository "pulsefeed-backend/internal/repository/post"
	user_repository "pulsefeed-backend/internal/repository/user"
)

// replyPreviewLimit is how many replies ride along with each top-level
// comment before the client has to ask for the rest.
const replyPreviewLimit = 2

type CommentService struct {
	commentRepo comment_repository.Repository
	postRepo    post_repository.Repository
	userRepo    user_repository.Repository
	log         *logger.Logger
}

func NewCommentService(
	commentRepo comment_repository.Repository,
	postRepo post_repository.Repository,
	userRepo user_repository.Repository,
	log *logger.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, dto *CreateCommentDTO) (*model.Comment, error) {
	if err := dto.For.IsValid(); err != nil {
		return nil, custom_errors.ErrInvalidCommentFor
	}
	if strings.TrimSpace(dto.Text) == "" {
		return nil, custom_errors.ErrInvalidCommentFor
	}
	if _, err := s.postRepo.GetByID(ctx, dto.PostID); err != nil {
		return nil, err
	}
	if dto.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *dto.ParentCommentID)
		if err != nil {
			return nil, err
		}
		// Deep threads are flattened: a reply to a reply hangs off the
		// top-level comment.
		if parent.ParentCommentID != nil {
			dto.ParentCommentID = parent.ParentCommentID
		}
	}

	comment, err := s.commentRepo.Create(ctx, &model.Comment{
		PostID:          dto.PostID,
		UserID:          dto.UserID,
		ParentCommentID: dto.ParentCommentID,
		Text:            dto.Text,
		For:             dto.For,
	})
	if err != nil {
		s.log.Error("Failed to create comment",
			slog.String("post_id", dto.PostID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, userID string, id string, text string, commentFor model.CommentFor) (*model.Comment, error) {
	if err := commentFor.IsValid(); err != nil {
		return nil, custom_errors.ErrInvalidCommentFor
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		s.log.Warn("Comment update denied",
			slog.String("comment_id", id),
			slog.String("user_id", userID))
		return nil, custom_errors.ErrForbidden
	}

	updated, err := s.commentRepo.Update(ctx, id, text, commentFor)
	if err != nil {
		s.log.Error("Failed to update comment", slog.String("comment_id", id), slog.String("error", err.Error()))
		return nil, err
	}
	return updated, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID string, id string) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		s.log.Warn("Comment delete denied",
			slog.String("comment_id", id),
			slog.String("user_id", userID))
		return custom_errors.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete comment", slog.String("comment_id", id), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *CommentService) ListForPost(ctx context.Context, viewerID string, postID string, offset, limit int) ([]*model.CommentView, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListTopLevel(ctx, postID, offset, limit)
	if err != nil {
		s.log.Error("Failed to list comments", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	views := make([]*model.CommentView, 0, len(comments))
	userIDs := make(map[string]struct{})
	for _, c := range comments {
		userIDs[c.UserID] = struct{}{}

		replies, err := s.commentRepo.ListReplies(ctx, c.ID, 0, replyPreviewLimit)
		if err != nil {
			s.log.Error("Failed to list replies", slog.String("comment_id", c.ID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		replyCount, err := s.commentRepo.CountReplies(ctx, c.ID)
		if err != nil {
			s.log.Error("Failed to count replies", slog.String("comment_id", c.ID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}

		view := commentView(c, viewerID)
		view.ReplyCount = replyCount
		view.ShowMoreReplies = replyCount > len(replies)
		for _, r := range replies {
			userIDs[r.UserID] = struct{}{}
			view.Replies = append(view.Replies, commentView(r, viewerID))
		}
		views = append(views, view)
	}

	if err := s.attachProfiles(ctx, views, userIDs); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *CommentService) ListReplies(ctx context.Context, viewerID string, parentID string, offset, limit int) ([]*model.CommentView, error) {
	if _, err := s.commentRepo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}

	replies, err := s.commentRepo.ListReplies(ctx, parentID, offset, limit)
	if err != nil {
		s.log.Error("Failed to list replies", slog.String("comment_id", parentID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	views := make([]*model.CommentView, 0, len(replies))
	userIDs := make(map[string]struct{})
	for _, r := range replies {
		userIDs[r.UserID] = struct{}{}
		views = append(views, commentView(r, viewerID))
	}
	if err := s.attachProfiles(ctx, views, userIDs); err != nil {
		return nil, err
	}
	return views, nil
}

// attachProfiles resolves usernames and avatars for a view tree with
// one batched lookup.
func (s *CommentService) attachProfiles(ctx context.Context, views []*model.CommentView, userIDs map[string]struct{}) error {
	if len(userIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(userIDs))
	for id := range userIDs {
		ids = append(ids, id)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.log.Error("Failed to load commenter profiles", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	byID := make(map[string]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	var apply func(view *model.CommentView)
	apply = func(view *model.CommentView) {
		if u, ok := byID[view.UserID]; ok {
			view.Username = u.Username
			view.ProfileImgURL = u.ProfileImgURL
		}
		for _, r := range view.Replies {
			apply(r)
		}
	}
	for _, v := range views {
		apply(v)
	}
	return nil
}

func commentView(c *model.Comment, viewerID string) *model.CommentView {
	return &model.CommentView{
		CommentID: c.ID,
		UserID:    c.UserID,
		Text:      c.Text,
		For:       c.For,
		CreatedAt: c.CreatedAt,
		OwnedByMe: c.UserID == viewerID,
	}
}
