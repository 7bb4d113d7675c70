package model

import "github.com/jackc/pgx/v5/pgtype"

// PostFilters describes a range query against the posts collection:
// equality on category/authors, half-open created_at window, exclusive
// cursor bound, id exclusion set, recency ordering, limit/offset.
type PostFilters struct {
	CategoryID    *string
	UserIDs       []string
	CreatedAfter  *pgtype.Timestamptz // created_at >= bound
	CreatedBefore *pgtype.Timestamptz // created_at <  bound
	CursorBefore  *pgtype.Timestamptz // created_at <  cursor, page continuation
	ExcludeIDs    []string
	Limit         *int
	Offset        *int
}
