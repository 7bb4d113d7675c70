package model

type CreatePostDTO struct {
	UserID   string            `json:"user_id"`
	Title    string            `json:"post_title"`
	Content  *string           `json:"post_content,omitempty"`
	Category string            `json:"category"`
	Images   []*PostImageInput `json:"images,omitempty"`
}

type UpdatePostDTO struct {
	Title   *string `json:"post_title,omitempty"`
	Content *string `json:"post_content,omitempty"`
}
