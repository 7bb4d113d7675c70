package model

type PostDetailed struct {
	Post          *Post        `json:"post"`
	Author        *UserProfile `json:"author,omitempty"`
	LikesCount    int          `json:"likes_count"`
	CommentsCount int          `json:"comments_count"`
	LikedByUser   bool         `json:"liked_by_current_user"`
}
