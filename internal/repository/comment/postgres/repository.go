package comment_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	"pulsefeed-backend/internal/repository/postgres/db"
)

const commentColumns = `comment_id, post_id, user_id, parent_comment_id, comment_text, comment_for, created_at, modified_at`

type CommentRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewCommentRepository(db db.PgDB, log *logger.Logger) *CommentRepository {
	return &CommentRepository{db: db, log: log}
}

func scanComment(row pgx.Row, comment *model.Comment) error {
	return row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.ParentCommentID,
		&comment.Text,
		&comment.For,
		&comment.CreatedAt,
		&comment.ModifiedAt,
	)
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	args := pgx.NamedArgs{
		"comment_id":        comment.ID,
		"post_id":           comment.PostID,
		"user_id":           comment.UserID,
		"parent_comment_id": comment.ParentCommentID,
		"comment_text":      comment.Text,
		"comment_for":       comment.For,
		"created_at":        now,
		"modified_at":       now,
	}
	query := `
		INSERT INTO comments (comment_id, post_id, user_id, parent_comment_id, comment_text, comment_for, created_at, modified_at)
		VALUES (@comment_id, @post_id, @user_id, @parent_comment_id, @comment_text, @comment_for, @created_at, @modified_at)
		RETURNING ` + commentColumns

	var created model.Comment
	if err := scanComment(r.db.QueryRow(ctx, query, args), &created); err != nil {
		r.log.Error("Error creating comment", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + commentColumns + ` FROM comments WHERE comment_id = @id`

	comment := &model.Comment{}
	if err := scanComment(r.db.QueryRow(ctx, query, args), comment); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("Comment not found by id", slog.String("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		r.log.Error("Error getting comment by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, id string, text string, commentFor model.CommentFor) (*model.Comment, error) {
	args := pgx.NamedArgs{
		"id":           id,
		"comment_text": text,
		"comment_for":  commentFor,
		"modified_at":  pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	query := `UPDATE comments
				SET comment_text = @comment_text, comment_for = @comment_for, modified_at = @modified_at
				WHERE comment_id = @id
				RETURNING ` + commentColumns

	var updated model.Comment
	if err := scanComment(r.db.QueryRow(ctx, query, args), &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("Comment not found by id during Update", slog.String("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		r.log.Error("Error updating comment", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &updated, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	// Direct replies cascade with the parent, nothing deeper.
	args := pgx.NamedArgs{"id": id}

	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE parent_comment_id = @id`, args); err != nil {
		r.log.Error("Error deleting comment replies", slog.String("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE comment_id = @id`, args)
	if err != nil {
		r.log.Error("Error deleting comment", slog.String("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	args := pgx.NamedArgs{"post_id": postID}
	if _, err := r.db.Exec(ctx, `DELETE FROM comments WHERE post_id = @post_id`, args); err != nil {
		r.log.Error("Error deleting comments by post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (r *CommentRepository) ListTopLevel(ctx context.Context, postID string, offset, limit int) ([]*model.Comment, error) {
	args := pgx.NamedArgs{"post_id": postID, "offset": offset, "limit": limit}
	query := `SELECT ` + commentColumns + ` FROM comments
				WHERE post_id = @post_id AND parent_comment_id IS NULL
				ORDER BY created_at ASC
				LIMIT @limit OFFSET @offset`

	return r.queryComments(ctx, query, args, "ListTopLevel")
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID string, offset, limit int) ([]*model.Comment, error) {
	args := pgx.NamedArgs{"parent_id": parentID, "offset": offset, "limit": limit}
	query := `SELECT ` + commentColumns + ` FROM comments
				WHERE parent_comment_id = @parent_id
				ORDER BY created_at ASC
				LIMIT @limit OFFSET @offset`

	return r.queryComments(ctx, query, args, "ListReplies")
}

func (r *CommentRepository) CountReplies(ctx context.Context, parentID string) (int, error) {
	args := pgx.NamedArgs{"parent_id": parentID}
	query := `SELECT COUNT(*) FROM comments WHERE parent_comment_id = @parent_id`

	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error("Error counting replies", slog.String("parent_id", parentID), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return count, nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT COUNT(*) FROM comments WHERE post_id = @post_id`

	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error("Error counting comments", slog.String("post_id", postID), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return count, nil
}

func (r *CommentRepository) StanceByPosts(ctx context.Context, postIDs []string) ([]*model.CommentStance, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{"post_ids": postIDs}
	query := `SELECT post_id,
				COUNT(*) FILTER (WHERE comment_for = 'support') AS support,
				COUNT(*) FILTER (WHERE comment_for = 'deny') AS deny
				FROM comments
				WHERE post_id = ANY(@post_ids)
				GROUP BY post_id`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting comment stances by posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var stances []*model.CommentStance
	for rows.Next() {
		var stance model.CommentStance
		if err := rows.Scan(&stance.PostID, &stance.Support, &stance.Deny); err != nil {
			r.log.Error("Error scanning stance during StanceByPosts", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		stances = append(stances, &stance)
	}

	if err = rows.Err(); err != nil {
		r.log.Error("Error iterating rows during StanceByPosts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return stances, nil
}

func (r *CommentRepository) queryComments(ctx context.Context, query string, args pgx.NamedArgs, op string) ([]*model.Comment, error) {
	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error(fmt.Sprintf("Error querying during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		if err := scanComment(rows, &comment); err != nil {
			r.log.Error(fmt.Sprintf("Error scanning comment during %s", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		comments = append(comments, &comment)
	}

	if err = rows.Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error iterating rows during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return comments, nil
}
