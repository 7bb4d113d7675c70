package post_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	"pulsefeed-backend/internal/repository/postgres/db"
)

const postColumns = `post_id, user_id, post_title, post_content, category, created_at, modified_at`

type PostRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewPostRepository(db db.PgDB, log *logger.Logger) *PostRepository {
	return &PostRepository{db: db, log: log}
}

func scanPost(row pgx.Row, post *model.Post) error {
	return row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Content,
		&post.CategoryID,
		&post.CreatedAt,
		&post.ModifiedAt,
	)
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"post_id":      post.ID,
		"user_id":      post.UserID,
		"post_title":   post.Title,
		"post_content": post.Content,
		"category":     post.CategoryID,
		"created_at":   now,
		"modified_at":  now,
	}

	query := `
		INSERT INTO posts (post_id, user_id, post_title, post_content, category, created_at, modified_at)
		VALUES (@post_id, @user_id, @post_title, @post_content, @category, @created_at, @modified_at)
		RETURNING ` + postColumns

	var createdPost model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, args), &createdPost); err != nil {
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = @id`

	post := &model.Post{}
	if err := scanPost(p.db.QueryRow(ctx, query, args), post); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return post, nil
}

func (p *PostRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{"ids": ids}
	query := `SELECT ` + postColumns + ` FROM posts WHERE post_id = ANY(@ids)`

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error("Error getting posts by ids", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return p.collectPosts(rows, "GetByIDs")
}

func (p *PostRepository) Update(ctx context.Context, id string, update *model.UpdatePostDTO) (*model.Post, error) {
	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Title != nil {
		setClauses = append(setClauses, "post_title = @post_title")
		args["post_title"] = *update.Title
	}
	if update.Content != nil {
		setClauses = append(setClauses, "post_content = @post_content")
		args["post_content"] = *update.Content
	}

	if len(setClauses) == 0 {
		return nil, custom_errors.ErrNoUpdateRows
	}

	setClauses = append(setClauses, "modified_at = @modified_at")
	args["modified_at"] = pgtype.Timestamptz{Time: time.Now(), Valid: true}

	query := "UPDATE posts SET " + strings.Join(setClauses, ", ") +
		" WHERE post_id = @id RETURNING " + postColumns

	var updatedPost model.Post
	if err := scanPost(p.db.QueryRow(ctx, query, args), &updatedPost); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.String("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.String("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return &updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id string) error {
	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM posts WHERE post_id = @id`
	result, err := p.db.Exec(ctx, query, args)
	if err != nil {
		p.log.Error("Error deleting post", slog.String("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		return custom_errors.ErrPostNotFound
	}
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	args := pgx.NamedArgs{}
	baseQuery := `SELECT ` + postColumns + ` FROM posts`

	whereClauses := []string{}

	if filters.CategoryID != nil {
		whereClauses = append(whereClauses, "category = @category")
		args["category"] = *filters.CategoryID
	}
	if len(filters.UserIDs) > 0 {
		whereClauses = append(whereClauses, "user_id = ANY(@user_ids)")
		args["user_ids"] = filters.UserIDs
	}
	if filters.CreatedAfter != nil {
		whereClauses = append(whereClauses, "created_at >= @created_after")
		args["created_after"] = *filters.CreatedAfter
	}
	if filters.CreatedBefore != nil {
		whereClauses = append(whereClauses, "created_at < @created_before")
		args["created_before"] = *filters.CreatedBefore
	}
	if filters.CursorBefore != nil {
		whereClauses = append(whereClauses, "created_at < @cursor_before")
		args["cursor_before"] = *filters.CursorBefore
	}
	if len(filters.ExcludeIDs) > 0 {
		whereClauses = append(whereClauses, "NOT (post_id = ANY(@exclude_ids))")
		args["exclude_ids"] = filters.ExcludeIDs
	}

	if len(whereClauses) > 0 {
		baseQuery += " WHERE " + strings.Join(whereClauses, " AND ")
	}

	baseQuery += " ORDER BY created_at DESC"

	if filters.Limit != nil {
		baseQuery += " LIMIT @limit"
		args["limit"] = *filters.Limit
	}
	if filters.Offset != nil {
		baseQuery += " OFFSET @offset"
		args["offset"] = *filters.Offset
	}

	rows, err := p.db.Query(ctx, baseQuery, args)
	if err != nil {
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	return p.collectPosts(rows, "List")
}

func (p *PostRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT COUNT(*) FROM posts WHERE user_id = @user_id`

	var count int
	if err := p.db.QueryRow(ctx, query, args).Scan(&count); err != nil {
		p.log.Error("Error counting posts by user", slog.String("user_id", userID), slog.String("error", err.Error()))
		return 0, custom_errors.ErrDatabaseQuery
	}
	return count, nil
}

func (p *PostRepository) TrendingIDs(ctx context.Context, offset, limit int) ([]string, error) {
	args := pgx.NamedArgs{"offset": offset, "limit": limit}
	query := `SELECT post_id FROM get_trending_post_ids(@offset, @limit)`
	return p.collectIDs(ctx, query, args, "TrendingIDs")
}

func (p *PostRepository) TrendingIDsByCategory(ctx context.Context, categoryID string, limit int) ([]string, error) {
	args := pgx.NamedArgs{"category": categoryID, "limit": limit}
	query := `SELECT post_id FROM get_trending_posts_by_category(@category, @limit)`
	return p.collectIDs(ctx, query, args, "TrendingIDsByCategory")
}

func (p *PostRepository) collectIDs(ctx context.Context, query string, args pgx.NamedArgs, op string) ([]string, error) {
	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.log.Error(fmt.Sprintf("Error querying during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			p.log.Error(fmt.Sprintf("Error scanning id during %s", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		p.log.Error(fmt.Sprintf("Error iterating rows during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return ids, nil
}

func (p *PostRepository) collectPosts(rows pgx.Rows, op string) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		if err := scanPost(rows, &post); err != nil {
			p.log.Error(fmt.Sprintf("Error scanning post during %s", op), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		p.log.Error(fmt.Sprintf("Error iterating rows during %s", op), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return posts, nil
}
