package search_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename SearchService.go
type Service interface {
	// SearchUsers runs the ranked user search and returns one merged
	// row per user with the keyset continuation values for the next
	// page.
	SearchUsers(ctx context.Context, query model.UserSearchQuery) (*model.UserSearchPage, error)
}
