package post_image_repository_postgres

import (
	"context"
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

type PostImageRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPostImageRepository(db db.PgDB, log *logger.Logger) *PostImageRepository {
	return &PostImageRepository{db: db, log: log}
}

func (r *PostImageRepository) Attach(ctx context.Context, postID string, images []*model.PostImage) error {
	if len(images) == 0 {
		return nil
	}

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	query := `
		INSERT INTO post_images (image_id, post_id, image_url, position, created_at)
		VALUES (@image_id, @post_id, @image_url, @position, @created_at)`

	for _, image := range images {
		args := pgx.NamedArgs{
			"image_id":   image.ID,
			"post_id":    postID,
			"image_url":  image.URL,
			"position":   image.Position,
			"created_at": now,
		}
		if _, err := r.db.Exec(ctx, query, args); err != nil {
			r.log.Error("Error attaching image to post",
				slog.String("post_id", postID),
				slog.String("error", err.Error()))
			return custom_errors.ErrImageAttach
		}
	}
	return nil
}

func (r *PostImageRepository) GetByPost(ctx context.Context, postID string) ([]*model.PostImage, error) {
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT image_id, post_id, image_url, position, created_at
				FROM post_images WHERE post_id = @post_id ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting images by post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return r.collectImages(rows, "GetByPost")
}

func (r *PostImageRepository) GetByPosts(ctx context.Context, postIDs []string) ([]*model.PostImage, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{"post_ids": postIDs}
	query := `SELECT image_id, post_id, image_url, position, created_at
				FROM post_images WHERE post_id = ANY(@post_ids) ORDER BY post_id, position ASC`

	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error("Error getting images by posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return r.collectImages(rows, "GetByPosts")
}

func (r *PostImageRepository) DeleteByPost(ctx context.Context, postID string) error {
	args := pgx.NamedArgs{"post_id": postID}
	query := `DELETE FROM post_images WHERE post_id = @post_id`
	if _, err := r.db.Exec(ctx, query, args); err != nil {
		r.log.Error("Error deleting images by post", slog.String("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (r *PostImageRepository) collectImages(rows pgx.Rows, op string) ([]*model.PostImage, error) {
	var images []*model.PostImage
	for rows.Next() {
		var image model.PostImage
		err := rows.Scan(
			&image.ID,
			&image.PostID,
			&image.URL,
			&image.Position,
			&image.CreatedAt,
		)
		if err != nil {
			r.log.Error(fmt.Sprintf("Error scanning image during %s", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		images = append(images, &image)
	}

	if err := rows.Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error iterating rows during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return images, nil
}
