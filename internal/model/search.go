package model

// UserSearchRow is one row from the search_users SQL function. A user
// matched by both full-text rank and trigram similarity comes back as
// two rows which the search service merges.
type UserSearchRow struct {
	UserID     string   `json:"user_id"`
	Rank       *float64 `json:"rank,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

type UserSearchResult struct {
	UserID        string   `json:"user_id"`
	Username      string   `json:"user_name"`
	FullName      *string  `json:"full_name,omitempty"`
	ProfileImgURL *string  `json:"profile_img_url,omitempty"`
	Rank          *float64 `json:"rank"`
	Similarity    *float64 `json:"similarity"`
	Score         *float64 `json:"score"`
}

type UserSearchQuery struct {
	Query          string
	Limit          int
	LastRank       *float64
	LastSimilarity *float64
}

type UserSearchPage struct {
	Users          []*UserSearchResult `json:"users"`
	NextRank       *float64            `json:"next_rank"`
	NextSimilarity *float64            `json:"next_similarity"`
}
