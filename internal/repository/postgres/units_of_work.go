package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulsefeed-backend/internal/logger"
	comment_repository "pulsefeed-backend/internal/repository/comment"
	comment_repository_postgres "pulsefeed-backend/internal/repository/comment/postgres"
	like_repository "pulsefeed-backend/internal/repository/like"
	like_repository_postgres "pulsefeed-backend/internal/repository/like/postgres"
	post_repository "pulsefeed-backend/internal/repository/post"
	post_repository_postgres "pulsefeed-backend/internal/repository/post/postgres"
	post_image_repository "pulsefeed-backend/internal/repository/post_image"
	post_image_repository_postgres "pulsefeed-backend/internal/repository/post_image/postgres"
)

type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

type Transaction interface {
	PostRepository() post_repository.Repository
	PostImageRepository() post_image_repository.Repository
	CommentRepository() comment_repository.Repository
	LikeRepository() like_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPostgresUOW(pool *pgxpool.Pool, log *logger.Logger) UnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log}
}

func (uow *PostgresUnitOfWork) Begin(ctx context.Context) (Transaction, error) {
	tx, err := uow.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &PostgresTransaction{tx: tx, log: uow.log}, nil
}

type PostgresTransaction struct {
	tx  pgx.Tx
	log *logger.Logger
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log)
}

func (t *PostgresTransaction) PostImageRepository() post_image_repository.Repository {
	return post_image_repository_postgres.NewPostImageRepository(t.tx, t.log)
}

func (t *PostgresTransaction) CommentRepository() comment_repository.Repository {
	return comment_repository_postgres.NewCommentRepository(t.tx, t.log)
}

func (t *PostgresTransaction) LikeRepository() like_repository.Repository {
	return like_repository_postgres.NewLikeRepository(t.tx, t.log)
}
