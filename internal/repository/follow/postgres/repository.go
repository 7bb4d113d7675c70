package follow_repository_postgres

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

type FollowRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewFollowRepository(db db.PgDB, log *logger.Logger) *FollowRepository {
	return &FollowRepository{db: db, log: log}
}

func (r *FollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	args := pgx.NamedArgs{
		"follow_id":    follow.ID,
		"follower_id":  follow.FollowerID,
		"following_id": follow.FollowingID,
		"created_at":   pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	query := `
		INSERT INTO userfollowing (follow_id, follower_id, following_id, created_at)
		VALUES (@follow_id, @follower_id, @following_id, @created_at)
		ON CONFLICT (follower_id, following_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, args); err != nil {
		r.log.Error("Error creating follow",
			slog.String("follower_id", follow.FollowerID),
			slog.String("following_id", follow.FollowingID),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	args := pgx.NamedArgs{"follower_id": followerID, "following_id": followingID}
	query := `DELETE FROM userfollowing WHERE follower_id = @follower_id AND following_id = @following_id`

	result, err := r.db.Exec(ctx, query, args)
	if err != nil {
		r.log.Error("Error deleting follow", slog.String("follower_id", followerID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrFollowNotFound
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	args := pgx.NamedArgs{"follower_id": followerID, "following_id": followingID}
	query := `SELECT COUNT(*) FROM userfollowing WHERE follower_id = @follower_id AND following_id = @following_id`

	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error("Error checking follow existence", slog.String("follower_id", followerID), slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}
	return count > 0, nil
}

func (r *FollowRepository) ListFollowerIDs(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	args := pgx.NamedArgs{"user_id": userID, "offset": offset, "limit": limit}
	query := `SELECT follower_id FROM userfollowing WHERE following_id = @user_id
				ORDER BY created_at DESC LIMIT @limit OFFSET @offset`
	return r.collectIDs(ctx, query, args, "ListFollowerIDs")
}

func (r *FollowRepository) ListFollowingIDs(ctx context.Context, userID string, offset, limit int) ([]string, error) {
	args := pgx.NamedArgs{"user_id": userID, "offset": offset, "limit": limit}
	query := `SELECT following_id FROM userfollowing WHERE follower_id = @user_id
				ORDER BY created_at DESC LIMIT @limit OFFSET @offset`
	return r.collectIDs(ctx, query, args, "ListFollowingIDs")
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT following_id FROM userfollowing WHERE follower_id = @user_id`
	return r.collectIDs(ctx, query, args, "FollowingIDs")
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT COUNT(*) FROM userfollowing WHERE following_id = @user_id`
	return r.count(ctx, query, args, "CountFollowers")
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT COUNT(*) FROM userfollowing WHERE follower_id = @user_id`
	return r.count(ctx, query, args, "CountFollowing")
}

func (r *FollowRepository) count(ctx context.Context, query string, args pgx.NamedArgs, op string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		r.log.Error(fmt.Sprintf("Error counting during %s", op), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return count, nil
}

func (r *FollowRepository) collectIDs(ctx context.Context, query string, args pgx.NamedArgs, op string) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args)
	if err != nil {
		r.log.Error(fmt.Sprintf("Error querying during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			r.log.Error(fmt.Sprintf("Error scanning id during %s", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error iterating rows during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return ids, nil
}
