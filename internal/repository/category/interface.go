package category_repository

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	// GetByTitle resolves a category by its case-insensitive title.
	GetByTitle(ctx context.Context, title string) (*model.Category, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Category, error)
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
}
