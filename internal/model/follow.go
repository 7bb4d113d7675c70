package model

import "github.com/jackc/pgx/v5/pgtype"

type Follow struct {
	ID          string             `json:"follow_id"`
	FollowerID  string             `json:"follower_id"`
	FollowingID string             `json:"following_id"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}
