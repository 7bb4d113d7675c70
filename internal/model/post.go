package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID         string             `json:"post_id"`
	UserID     string             `json:"user_id"`
	Title      string             `json:"post_title"`
	Content    *string            `json:"post_content,omitempty"`
	CategoryID string             `json:"category"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	ModifiedAt pgtype.Timestamptz `json:"modified_at"`
	Images     []*PostImage       `json:"images,omitempty"`
}
