package post_service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	category_memory "pulsefeed-backend/internal/repository/category/memory"
	comment_memory "pulsefeed-backend/internal/repository/comment/memory"
	like_memory "pulsefeed-backend/internal/repository/like/memory"
	"pulsefeed-backend/internal/repository/memory"
	post_memory "pulsefeed-backend/internal/repository/post/memory"
	post_image_memory "pulsefeed-backend/internal/repository/post_image/memory"
	user_memory "pulsefeed-backend/internal/repository/user/memory"
)

type postFixture struct {
	svc      *PostService
	posts    *post_memory.PostRepository
	images   *post_image_memory.PostImageRepository
	likes    *like_memory.LikeRepository
	comments *comment_memory.CommentRepository
	author   *model.User
	category *model.Category
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	log := logger.New("test")
	ctx := context.Background()

	posts := post_memory.NewPostRepository(log)
	images := post_image_memory.NewPostImageRepository(log)
	likes := like_memory.NewLikeRepository(log)
	comments := comment_memory.NewCommentRepository(log)
	users := user_memory.NewUserRepository(log)
	categories := category_memory.NewCategoryRepository(log)
	uow := memory.NewUnitOfWork(posts, images, comments, likes)

	author, err := users.Create(ctx, &model.User{
		Email:    "author@example.com",
		Username: "author",
		Password: "hashed",
		Verified: true,
	})
	require.NoError(t, err)
	category, err := categories.Create(ctx, &model.Category{Title: "science"})
	require.NoError(t, err)

	return &postFixture{
		svc:      NewPostService(posts, images, likes, comments, users, categories, uow, log),
		posts:    posts,
		images:   images,
		likes:    likes,
		comments: comments,
		author:   author,
		category: category,
	}
}

func strPtr(s string) *string { return &s }

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with images", func(t *testing.T) {
		fx := newPostFixture(t)
		created, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
			UserID:   fx.author.ID,
			Title:    "Gravitational waves",
			Content:  strPtr("observed again"),
			Category: "science",
			Images: []*model.PostImageInput{
				{URL: "https://cdn.example.com/wave.jpg", Position: 1},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.Post.ID)
		assert.Equal(t, fx.category.ID, created.Post.CategoryID)
		assert.Equal(t, "author", created.Author.Username)
		require.Len(t, created.Post.Images, 1)

		stored, err := fx.images.GetByPost(ctx, created.Post.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("Unknown category", func(t *testing.T) {
		fx := newPostFixture(t)
		_, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
			UserID:   fx.author.ID,
			Title:    "title",
			Category: "no-such",
		})
		assert.ErrorIs(t, err, custom_errors.ErrCategoryNotFound)
	})

	t.Run("Blank title", func(t *testing.T) {
		fx := newPostFixture(t)
		_, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
			UserID:   fx.author.ID,
			Title:    "   ",
			Category: "science",
		})
		assert.ErrorIs(t, err, custom_errors.ErrPostValidation)
	})

	t.Run("Unknown author", func(t *testing.T) {
		fx := newPostFixture(t)
		_, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
			UserID:   "missing",
			Title:    "title",
			Category: "science",
		})
		assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
	})
}

func TestPostService_GetPostByID(t *testing.T) {
	ctx := context.Background()
	fx := newPostFixture(t)

	created, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
		UserID:   fx.author.ID,
		Title:    "title",
		Category: "science",
	})
	require.NoError(t, err)

	_, err = fx.likes.Create(ctx, &model.Like{PostID: created.Post.ID, UserID: "viewer"})
	require.NoError(t, err)
	_, err = fx.comments.Create(ctx, &model.Comment{
		PostID: created.Post.ID, UserID: "viewer",
		Text: "nice", For: model.CommentForSupport,
	})
	require.NoError(t, err)

	detailed, err := fx.svc.GetPostByID(ctx, "viewer", created.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detailed.LikesCount)
	assert.Equal(t, 1, detailed.CommentsCount)
	assert.True(t, detailed.LikedByUser)
	assert.Equal(t, "author", detailed.Author.Username)

	_, err = fx.svc.GetPostByID(ctx, "viewer", "missing")
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()
	fx := newPostFixture(t)

	created, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
		UserID:   fx.author.ID,
		Title:    "before",
		Category: "science",
	})
	require.NoError(t, err)

	_, err = fx.svc.UpdatePost(ctx, "intruder", created.Post.ID, &model.UpdatePostDTO{Title: strPtr("after")})
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	updated, err := fx.svc.UpdatePost(ctx, fx.author.ID, created.Post.ID, &model.UpdatePostDTO{Title: strPtr("after")})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
}

func TestPostService_DeletePost(t *testing.T) {
	ctx := context.Background()
	fx := newPostFixture(t)

	created, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
		UserID:   fx.author.ID,
		Title:    "doomed",
		Category: "science",
		Images: []*model.PostImageInput{
			{URL: "https://cdn.example.com/x.jpg", Position: 1},
		},
	})
	require.NoError(t, err)
	postID := created.Post.ID

	_, err = fx.likes.Create(ctx, &model.Like{PostID: postID, UserID: "fan"})
	require.NoError(t, err)
	_, err = fx.comments.Create(ctx, &model.Comment{
		PostID: postID, UserID: "fan",
		Text: "keep it", For: model.CommentForSupport,
	})
	require.NoError(t, err)

	err = fx.svc.DeletePost(ctx, "intruder", postID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	err = fx.svc.DeletePost(ctx, fx.author.ID, postID)
	require.NoError(t, err)

	_, err = fx.posts.GetByID(ctx, postID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	images, err := fx.images.GetByPost(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, images)

	likeCount, err := fx.likes.CountByPost(ctx, postID)
	require.NoError(t, err)
	assert.Zero(t, likeCount)

	commentCount, err := fx.comments.CountByPost(ctx, postID)
	require.NoError(t, err)
	assert.Zero(t, commentCount)
}

func TestPostService_ListByUser(t *testing.T) {
	ctx := context.Background()
	fx := newPostFixture(t)

	for i := 0; i < 3; i++ {
		_, err := fx.svc.CreatePost(ctx, &model.CreatePostDTO{
			UserID:   fx.author.ID,
			Title:    "post",
			Category: "science",
		})
		require.NoError(t, err)
	}

	posts, err := fx.svc.ListByUser(ctx, "viewer", fx.author.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	_, err = fx.svc.ListByUser(ctx, "viewer", "missing", 0, 10)
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}
