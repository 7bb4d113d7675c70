package comment_service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	comment_memory "pulsefeed-backend/internal/repository/comment/memory"
	post_memory "pulsefeed-backend/internal/repository/post/memory"
	user_memory "pulsefeed-backend/internal/repository/user/memory"
)

type commentFixture struct {
	svc      *CommentService
	comments *comment_memory.CommentRepository
	posts    *post_memory.PostRepository
	users    *user_memory.UserRepository
	author   *model.User
	post     *model.Post
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	log := logger.New("test")

	fx := &commentFixture{
		comments: comment_memory.NewCommentRepository(log),
		posts:    post_memory.NewPostRepository(log),
		users:    user_memory.NewUserRepository(log),
	}
	fx.svc = NewCommentService(fx.comments, fx.posts, fx.users, log)

	author, err := fx.users.Create(context.Background(), &model.User{
		Email:    "author@example.com",
		Username: "author",
		Password: "hashed",
	})
	require.NoError(t, err)
	fx.author = author

	post, err := fx.posts.Create(context.Background(), &model.Post{
		UserID: author.ID,
		Title:  "debate post",
	})
	require.NoError(t, err)
	fx.post = post
	return fx
}

func (fx *commentFixture) seedComment(t *testing.T, userID string, parentID *string, text string, at time.Time) *model.Comment {
	t.Helper()
	comment, err := fx.comments.Create(context.Background(), &model.Comment{
		PostID:          fx.post.ID,
		UserID:          userID,
		ParentCommentID: parentID,
		Text:            text,
		For:             model.CommentForSupport,
		CreatedAt:       pgtype.Timestamptz{Time: at, Valid: true},
	})
	require.NoError(t, err)
	return comment
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := newCommentFixture(t)

		comment, err := fx.svc.CreateComment(context.Background(), &CreateCommentDTO{
			PostID: fx.post.ID,
			UserID: fx.author.ID,
			Text:   "strongly agree",
			For:    model.CommentForSupport,
		})
		require.NoError(t, err)
		assert.Equal(t, model.CommentForSupport, comment.For)
		assert.Nil(t, comment.ParentCommentID)
	})

	t.Run("invalid stance", func(t *testing.T) {
		fx := newCommentFixture(t)

		_, err := fx.svc.CreateComment(context.Background(), &CreateCommentDTO{
			PostID: fx.post.ID,
			UserID: fx.author.ID,
			Text:   "hmm",
			For:    model.CommentFor("maybe"),
		})
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCommentFor)
	})

	t.Run("blank text", func(t *testing.T) {
		fx := newCommentFixture(t)

		_, err := fx.svc.CreateComment(context.Background(), &CreateCommentDTO{
			PostID: fx.post.ID,
			UserID: fx.author.ID,
			Text:   "   ",
			For:    model.CommentForDeny,
		})
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCommentFor)
	})

	t.Run("unknown post", func(t *testing.T) {
		fx := newCommentFixture(t)

		_, err := fx.svc.CreateComment(context.Background(), &CreateCommentDTO{
			PostID: "missing",
			UserID: fx.author.ID,
			Text:   "hello",
			For:    model.CommentForSupport,
		})
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})

	t.Run("reply to a reply hangs off the top-level comment", func(t *testing.T) {
		fx := newCommentFixture(t)
		now := time.Now()
		top := fx.seedComment(t, fx.author.ID, nil, "top", now)
		reply := fx.seedComment(t, fx.author.ID, &top.ID, "first reply", now.Add(time.Minute))

		nested, err := fx.svc.CreateComment(context.Background(), &CreateCommentDTO{
			PostID:          fx.post.ID,
			UserID:          fx.author.ID,
			ParentCommentID: &reply.ID,
			Text:            "reply to the reply",
			For:             model.CommentForDeny,
		})
		require.NoError(t, err)
		require.NotNil(t, nested.ParentCommentID)
		assert.Equal(t, top.ID, *nested.ParentCommentID)
	})

	t.Run("unknown parent", func(t *testing.T) {
		fx := newCommentFixture(t)
		missing := "missing-parent"

		_, err := fx.svc.CreateComment(context.Background(), &CreateCommentDTO{
			PostID:          fx.post.ID,
			UserID:          fx.author.ID,
			ParentCommentID: &missing,
			Text:            "orphan",
			For:             model.CommentForSupport,
		})
		assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	fx := newCommentFixture(t)
	comment := fx.seedComment(t, fx.author.ID, nil, "original", time.Now())

	t.Run("forbidden for non-owner", func(t *testing.T) {
		_, err := fx.svc.UpdateComment(context.Background(), "someone-else", comment.ID, "edited", model.CommentForDeny)
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)
	})

	t.Run("owner can edit", func(t *testing.T) {
		updated, err := fx.svc.UpdateComment(context.Background(), fx.author.ID, comment.ID, "edited", model.CommentForDeny)
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.Equal(t, model.CommentForDeny, updated.For)
	})
}

func TestCommentService_DeleteComment(t *testing.T) {
	fx := newCommentFixture(t)
	now := time.Now()
	comment := fx.seedComment(t, fx.author.ID, nil, "doomed", now)
	fx.seedComment(t, fx.author.ID, &comment.ID, "reply", now.Add(time.Minute))

	err := fx.svc.DeleteComment(context.Background(), "someone-else", comment.ID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	err = fx.svc.DeleteComment(context.Background(), fx.author.ID, comment.ID)
	require.NoError(t, err)

	_, err = fx.comments.GetByID(context.Background(), comment.ID)
	assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)

	count, err := fx.comments.CountByPost(context.Background(), fx.post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCommentService_ListForPost(t *testing.T) {
	fx := newCommentFixture(t)
	now := time.Now()

	commenter, err := fx.users.Create(context.Background(), &model.User{
		Email:    "commenter@example.com",
		Username: "commenter",
		Password: "hashed",
	})
	require.NoError(t, err)

	top := fx.seedComment(t, commenter.ID, nil, "top-level", now)
	for i := 0; i < 4; i++ {
		fx.seedComment(t, fx.author.ID, &top.ID, fmt.Sprintf("reply %d", i), now.Add(time.Duration(i+1)*time.Minute))
	}

	views, err := fx.svc.ListForPost(context.Background(), fx.author.ID, fx.post.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "commenter", view.Username)
	assert.False(t, view.OwnedByMe)
	assert.Equal(t, 4, view.ReplyCount)
	assert.Len(t, view.Replies, replyPreviewLimit)
	assert.True(t, view.ShowMoreReplies)
	assert.Equal(t, "reply 0", view.Replies[0].Text)
	assert.True(t, view.Replies[0].OwnedByMe)
	assert.Equal(t, "author", view.Replies[0].Username)
}

func TestCommentService_ListReplies(t *testing.T) {
	fx := newCommentFixture(t)
	now := time.Now()
	top := fx.seedComment(t, fx.author.ID, nil, "top-level", now)
	for i := 0; i < 5; i++ {
		fx.seedComment(t, fx.author.ID, &top.ID, fmt.Sprintf("reply %d", i), now.Add(time.Duration(i+1)*time.Minute))
	}

	page, err := fx.svc.ListReplies(context.Background(), fx.author.ID, top.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "reply 2", page[0].Text)
	assert.Equal(t, "reply 3", page[1].Text)

	_, err = fx.svc.ListReplies(context.Background(), fx.author.ID, "missing", 0, 10)
	assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
}
