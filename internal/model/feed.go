package model

import "time"

// FeedCursor carries the per-band continuation timestamps of a category
// feed session. A nil band timestamp means the band was exhausted or not
// reached yet; values only move backwards in time across pages.
type FeedCursor struct {
	B1 *time.Time `json:"b1"`
	B2 *time.Time `json:"b2"`
	B3 *time.Time `json:"b3"`
}

type CategoryFeedQuery struct {
	Category    string
	Cursor      FeedCursor
	LastSeen    *time.Time
	SessionSeed string
}

type FeedImage struct {
	URL      string `json:"url"`
	Position int32  `json:"position"`
}

// FeedItem is a post augmented with everything the enrichment stage
// batch-joins onto the merged page.
type FeedItem struct {
	PostID             string      `json:"post_id"`
	UserID             string      `json:"user_id"`
	Title              string      `json:"title"`
	Content            *string     `json:"content,omitempty"`
	CategoryID         string      `json:"category"`
	CategoryTitle      *string     `json:"category_title,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	Images             []FeedImage `json:"images"`
	Username           string      `json:"user_name"`
	FullName           *string     `json:"full_name,omitempty"`
	LikesCount         int         `json:"likes_count"`
	CommentsCount      int         `json:"comments_count"`
	SupportCount       int         `json:"support_count"`
	DenyCount          int         `json:"deny_count"`
	SupportPercentage  float64     `json:"support_percentage"`
	DenyPercentage     float64     `json:"deny_percentage"`
	LikedByCurrentUser bool        `json:"liked_by_current_user"`
}

type CategoryFeedPage struct {
	Posts      []*FeedItem `json:"posts"`
	NextCursor FeedCursor  `json:"next_cursor"`
	LastSeen   *time.Time  `json:"last_seen"`
	HasMore    bool        `json:"has_more"`
}
