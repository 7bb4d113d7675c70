package like_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	"pulsefeed-backend/internal/repository/postgres/db"
)

const uniqueViolationCode = "23505"

type LikeRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewLikeRepository(db db.PgDB, log *logger.Logger) *LikeRepository {
	return &LikeRepository{db: db, log: log}
}

func (r *LikeRepository) Create(ctx context.Context, like *model.Like) (*model.Like, error) {
	args := pgx.NamedArgs{
		"like_id":    like.ID,
		"post_id":    like.PostID,
		"user_id":    like.UserID,
		"created_at": pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	query := `
		INSERT INTO likes (like_id, post_id, user_id, created_at)
		VALUES (@like_id, @post_id, @user_id, @created_at)
		RETURNING like_id, post_id, user_id, created_at`

	var created model.Like
	err := r.db.QueryRow(ctx, query, args).Scan(
		&created.ID,
		&created.PostID,
		&created.UserID,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.log.Debug("Duplicate like rejected",
				slog.String("post_id", like.PostID),
				slog.String("user_id", like.UserID))
			return nil, custom_errors.ErrAlreadyLiked
		}
		r.log.Error("Error creating like", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (r *LikeRepository) Delete(ctx context.Context, postID, userID string) error {
	args := pgx.NamedArgs{"post_id": postID, "user_id": userID}
	query := `DELETE FROM likes WHERE post_id = @post_id AND user_id = @user_id`

	result, err := r.db.Exec(ctx, query, args)
	if err != nil {
		r.log.Error("Error deleting like", slog.String("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrLikeNotFound
	}
	return nil
}

func (r *LikeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	args := pgx.NamedArgs{"post_id": postID, "user_id": userID}
	query := `SELECT COUNT(*) FROM likes WHERE post_id = @post_id AND user_id = @user_id`

	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error("Error checking like existence", slog.String("post_id", postID), slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return count > 0, nil
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT COUNT(*) FROM likes WHERE post_id = @post_id`

	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error("Error counting likes", slog.String("post_id", postID), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return count, nil
}

func (r *LikeRepository) GetByPosts(ctx context.Context, postIDs []string) ([]*model.Like, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{"post_ids": postIDs}
	query := `SELECT like_id, post_id, user_id, created_at FROM likes WHERE post_id = ANY(@post_ids)`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting likes by posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var likes []*model.Like
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			r.log.Error("Error scanning like during GetByPosts", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		likes = append(likes, &like)
	}

	if err = rows.Err(); err != nil {
		r.log.Error("Error iterating rows during GetByPosts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return likes, nil
}

func (r *LikeRepository) UsersWhoLiked(ctx context.Context, postID string) ([]string, error) {
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT user_id FROM likes WHERE post_id = @post_id`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting users who liked", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			r.log.Error("Error scanning user id during UsersWhoLiked", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		userIDs = append(userIDs, userID)
	}

	if err = rows.Err(); err != nil {
		r.log.Error("Error iterating rows during UsersWhoLiked", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return userIDs, nil
}

func (r *LikeRepository) DeleteByPost(ctx context.Context, postID string) error {
	args := pgx.NamedArgs{"post_id": postID}
	query := `DELETE FROM likes WHERE post_id = @post_id`
	if _, err := r.db.Exec(ctx, query, args); err != nil {
		r.log.Error("Error deleting likes by post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}
