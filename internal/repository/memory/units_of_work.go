package memory

import (
	"context"

	"pulsefeed-backend/internal/repository/postgres"

	comment_repository "pulsefeed-backend/internal/repository/comment"
	like_repository "pulsefeed-backend/internal/repository/like"
	post_repository "pulsefeed-backend/internal/repository/post"
	post_image_repository "pulsefeed-backend/internal/repository/post_image"
)

// UnitOfWork backs service tests with in-memory repositories.
// Commit and Rollback are no-ops, every call mutates shared state directly.
type UnitOfWork struct {
	Posts    post_repository.Repository
	Images   post_image_repository.Repository
	Comments comment_repository.Repository
	Likes    like_repository.Repository
}

func NewUnitOfWork(
	posts post_repository.Repository,
	images post_image_repository.Repository,
	comments comment_repository.Repository,
	likes like_repository.Repository,
) *UnitOfWork {
	return &UnitOfWork{Posts: posts, Images: images, Comments: comments, Likes: likes}
}

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &memoryTransaction{uow: u}, nil
}

type memoryTransaction struct {
	uow *UnitOfWork
}

func (t *memoryTransaction) Commit(ctx context.Context) error   { return nil }
func (t *memoryTransaction) Rollback(ctx context.Context) error { return nil }

func (t *memoryTransaction) PostRepository() post_repository.Repository {
	return t.uow.Posts
}

func (t *memoryTransaction) PostImageRepository() post_image_repository.Repository {
	return t.uow.Images
}

func (t *memoryTransaction) CommentRepository() comment_repository.Repository {
	return t.uow.Comments
}

func (t *memoryTransaction) LikeRepository() like_repository.Repository {
	return t.uow.Likes
}
