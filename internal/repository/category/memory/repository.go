package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
)

type CategoryRepository struct {
	log        *logger.Logger
	mu         sync.RWMutex
	categories map[string]*model.Category
}

func NewCategoryRepository(log *logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		log:        log,
		categories: make(map[string]*model.Category),
	}
}

func (c *CategoryRepository) GetByTitle(ctx context.Context, title string) (*model.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, category := range c.categories {
		if strings.EqualFold(category.Title, title) {
			result := *category
			return &result, nil
		}
	}
	c.log.Debug("Category not found by title", slog.String("title", title))
	return nil, custom_errors.ErrCategoryNotFound
}

func (c *CategoryRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []*model.Category
	for _, id := range ids {
		if category, ok := c.categories[id]; ok {
			categoryCopy := *category
			result = append(result, &categoryCopy)
		}
	}
	return result, nil
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := *category
	if created.ID == "" {
		created.ID = uuid.New().String()
	}
	c.categories[created.ID] = &created

	result := created
	return &result, nil
}
