package category_repository_postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	"pulsefeed-backend/internal/repository/postgres/db"
)

type CategoryRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewCategoryRepository(db db.PgDB, log *logger.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, log: log}
}

func (c *CategoryRepository) GetByTitle(ctx context.Context, title string) (*model.Category, error) {
	args := pgx.NamedArgs{"title": title}
	query := `SELECT cat_id, cat_title FROM categories WHERE cat_title ILIKE @title LIMIT 1`

	category := &model.Category{}
	err := c.db.QueryRow(ctx, query, args).Scan(&category.ID, &category.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.log.Debug("Category not found by title", slog.String("title", title))
			return nil, custom_errors.ErrCategoryNotFound
		}
		c.log.Error("Error getting category by title", slog.String("title", title), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return category, nil
}

func (c *CategoryRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{"ids": ids}
	query := `SELECT cat_id, cat_title FROM categories WHERE cat_id = ANY(@ids)`

	rows, err := c.db.Query(ctx, query, args)
	if err != nil {
		c.log.Error("Error getting categories by ids", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Title); err != nil {
			c.log.Error("Error scanning category during GetByIDs", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		c.log.Error("Error iterating rows during GetByIDs", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return categories, nil
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	args := pgx.NamedArgs{
		"cat_id":    category.ID,
		"cat_title": category.Title,
	}
	query := `INSERT INTO categories (cat_id, cat_title)
				VALUES (@cat_id, @cat_title)
				RETURNING cat_id, cat_title`

	var created model.Category
	err := c.db.QueryRow(ctx, query, args).Scan(&created.ID, &created.Title)
	if err != nil {
		c.log.Error("Error creating category", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &created, nil
}
