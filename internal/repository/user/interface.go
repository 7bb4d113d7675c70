package user_repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/model"
)

type Repository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByIDs backs the feed enrichment author join; one query per id set.
	GetByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	Update(ctx context.Context, id string, update *model.UpdateUserDTO) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SetOTP(ctx context.Context, id string, otp string, expiry pgtype.Timestamptz) error
	MarkVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, hashed string) error
	UpdateLastSignIn(ctx context.Context, id string) error
	// Search delegates ranking to the search_users database function
	// (full-text rank plus trigram similarity, keyset-paginated).
	Search(ctx context.Context, query model.UserSearchQuery) ([]*model.UserSearchRow, error)
	// Suggested returns users not in the exclusion set, for follow
	// recommendations.
	Suggested(ctx context.Context, excludeIDs []string, limit int) ([]*model.User, error)
}
