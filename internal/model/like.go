package model

import "github.com/jackc/pgx/v5/pgtype"

type Like struct {
	ID        string             `json:"like_id"`
	PostID    string             `json:"post_id"`
	UserID    string             `json:"user_id"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
