package model

type Category struct {
	ID    string `json:"cat_id"`
	Title string `json:"cat_title"`
}
