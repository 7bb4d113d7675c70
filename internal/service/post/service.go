package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	category_repository "pulsefeed-backend/internal/repository/category"
	comment_repository "pulsefeed-backend/internal/repository/comment"
	like_repository "pulsefeed-backend/internal/repository/like"
	post_repository "pulsefeed-backend/internal/repository/post"
	post_image_repository "pulsefeed-backend/internal/repository/post_image"
	"pulsefeed-backend/internal/repository/postgres"
	user_repository "pulsefeed-backend/internal/repository/user"
)

type PostService struct {
	postRepo     post_repository.Repository
	imageRepo    post_image_repository.Repository
	likeRepo     like_repository.Repository
	commentRepo  comment_repository.Repository
	userRepo     user_repository.Repository
	categoryRepo category_repository.Repository
	uow          postgres.UnitOfWork
	log          *logger.Logger
}

func NewPostService(
	postRepo post_repository.Repository,
	imageRepo post_image_repository.Repository,
	likeRepo like_repository.Repository,
	commentRepo comment_repository.Repository,
	userRepo user_repository.Repository,
	categoryRepo category_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		imageRepo:    imageRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		uow:          uow,
		log:          log,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (result *model.PostDetailed, err error) {
	if strings.TrimSpace(post.Title) == "" {
		return nil, custom_errors.ErrPostValidation
	}

	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		s.log.Error("Failed to load post author", slog.String("user_id", post.UserID), slog.String("error", err.Error()))
		return nil, err
	}

	category, err := s.categoryRepo.GetByTitle(ctx, post.Category)
	if err != nil {
		s.log.Error("Failed to resolve post category", slog.String("category", post.Category), slog.String("error", err.Error()))
		return nil, err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !strings.Contains(rollbackErr.Error(), "tx is closed") {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()
	imageRepo := tx.PostImageRepository()

	newPost := &model.Post{
		UserID:     post.UserID,
		Title:      post.Title,
		Content:    post.Content,
		CategoryID: category.ID,
	}
	createdPost, err := postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, err
	}

	if len(post.Images) > 0 {
		images := make([]*model.PostImage, 0, len(post.Images))
		for _, img := range post.Images {
			images = append(images, &model.PostImage{
				PostID:   createdPost.ID,
				URL:      img.URL,
				Position: img.Position,
			})
		}
		if err = imageRepo.Attach(ctx, createdPost.ID, images); err != nil {
			s.log.Error("Failed to attach post images", slog.String("post_id", createdPost.ID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrImageAttach
		}
		createdPost.Images = images
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return &model.PostDetailed{
		Post: createdPost,
		Author: &model.UserProfile{
			ID:            author.ID,
			Username:      author.Username,
			FullName:      author.FullName,
			ProfileImgURL: author.ProfileImgURL,
		},
	}, nil
}

func (s *PostService) GetPostByID(ctx context.Context, viewerID string, id string) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, err
		}
		s.log.Error("Failed to get post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	detailed, err := s.detail(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	return detailed, nil
}

func (s *PostService) ListByUser(ctx context.Context, viewerID string, userID string, offset, limit int) ([]*model.PostDetailed, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	filters := model.PostFilters{
		UserIDs: []string{userID},
		Offset:  &offset,
		Limit:   &limit,
	}
	posts, err := s.postRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Failed to list user posts", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	detailed := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		d, err := s.detail(ctx, viewerID, post)
		if err != nil {
			return nil, err
		}
		detailed = append(detailed, d)
	}
	return detailed, nil
}

func (s *PostService) UpdatePost(ctx context.Context, userID string, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		s.log.Warn("Post update denied",
			slog.String("post_id", id),
			slog.String("owner_id", post.UserID),
			slog.String("user_id", userID))
		return nil, custom_errors.ErrForbidden
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, custom_errors.ErrPostValidation
	}

	updated, err := s.postRepo.Update(ctx, id, update)
	if err != nil {
		s.log.Error("Failed to update post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, err
	}
	updated.Images, err = s.imageRepo.GetByPost(ctx, id)
	if err != nil {
		s.log.Error("Failed to load post images", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return updated, nil
}

// DeletePost removes a post with its images, comments and likes in one
// transaction, dependents first.
func (s *PostService) DeletePost(ctx context.Context, userID string, id string) (err error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		s.log.Warn("Post delete denied",
			slog.String("post_id", id),
			slog.String("owner_id", post.UserID),
			slog.String("user_id", userID))
		return custom_errors.ErrForbidden
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !strings.Contains(rollbackErr.Error(), "tx is closed") {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	if err = tx.PostImageRepository().DeleteByPost(ctx, id); err != nil {
		s.log.Error("Failed to delete post images", slog.String("post_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if err = tx.CommentRepository().DeleteByPost(ctx, id); err != nil {
		s.log.Error("Failed to delete post comments", slog.String("post_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if err = tx.LikeRepository().DeleteByPost(ctx, id); err != nil {
		s.log.Error("Failed to delete post likes", slog.String("post_id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if err = tx.PostRepository().Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete post", slog.String("post_id", id), slog.String("error", err.Error()))
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true
	return nil
}

func (s *PostService) detail(ctx context.Context, viewerID string, post *model.Post) (*model.PostDetailed, error) {
	images, err := s.imageRepo.GetByPost(ctx, post.ID)
	if err != nil {
		s.log.Error("Failed to load post images", slog.String("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	post.Images = images

	detailed := &model.PostDetailed{Post: post}

	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err == nil {
		detailed.Author = &model.UserProfile{
			ID:            author.ID,
			Username:      author.Username,
			FullName:      author.FullName,
			ProfileImgURL: author.ProfileImgURL,
		}
	}

	detailed.LikesCount, err = s.likeRepo.CountByPost(ctx, post.ID)
	if err != nil {
		s.log.Error("Failed to count likes", slog.String("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	detailed.CommentsCount, err = s.commentRepo.CountByPost(ctx, post.ID)
	if err != nil {
		s.log.Error("Failed to count comments", slog.String("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if viewerID != "" {
		detailed.LikedByUser, err = s.likeRepo.Exists(ctx, post.ID, viewerID)
		if err != nil {
			s.log.Error("Failed to check viewer like", slog.String("post_id", post.ID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}
	return detailed, nil
}
