package model

import "github.com/jackc/pgx/v5/pgtype"

type PostImage struct {
	ID        string             `json:"image_id"`
	PostID    string             `json:"post_id"`
	URL       string             `json:"image_url"`
	Position  int32              `json:"position"`
	CreatedAt pgtype.Timestamptz `json:"created_at,omitempty"`
}

type PostImageInput struct {
	URL      string `json:"image_url"`
	Position int32  `json:"position"`
}
