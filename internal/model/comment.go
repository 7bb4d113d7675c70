package model

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
)

// CommentFor is the stance a comment takes on its post.
type CommentFor string

const (
	CommentForSupport CommentFor = "support"
	CommentForDeny    CommentFor = "deny"
)

func (f CommentFor) IsValid() error {
	switch f {
	case CommentForSupport, CommentForDeny:
		return nil
	}
	return fmt.Errorf("invalid comment_for value: %s", f)
}

func (f *CommentFor) UnmarshalText(text []byte) error {
	cf := CommentFor(text)
	if err := cf.IsValid(); err != nil {
		return err
	}
	*f = cf
	return nil
}

type Comment struct {
	ID              string             `json:"comment_id"`
	PostID          string             `json:"post_id"`
	UserID          string             `json:"user_id"`
	ParentCommentID *string            `json:"parent_comment_id,omitempty"`
	Text            string             `json:"comment_text"`
	For             CommentFor         `json:"comment_for"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	ModifiedAt      pgtype.Timestamptz `json:"modified_at,omitempty"`
}

// CommentStance holds the per-post support/deny tallies surfaced
// by the feed enrichment stage.
type CommentStance struct {
	PostID  string
	Support int
	Deny    int
}

// CommentView is a comment joined with its owner profile, as returned
// by the comment listing endpoints. Replies carry at most one nesting
// level; deeper chains are flattened into the parent's reply list.
type CommentView struct {
	CommentID       string             `json:"comment_id"`
	UserID          string             `json:"user_id"`
	Username        string             `json:"user_name"`
	ProfileImgURL   *string            `json:"profile_img_url,omitempty"`
	Text            string             `json:"text"`
	For             CommentFor         `json:"comment_for"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	OwnedByMe       bool               `json:"owned_by_me"`
	Replies         []*CommentView     `json:"replies,omitempty"`
	ReplyCount      int                `json:"reply_count"`
	ShowMoreReplies bool               `json:"show_more_replies"`
}
