package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/delivery/http/response"
	"pulsefeed-backend/internal/model"
	post_service "pulsefeed-backend/internal/service/post"
)

type PostHandler struct {
	posts post_service.Service
}

func NewPostHandler(posts post_service.Service) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	Title    string  `json:"post_title" binding:"required,max=200"`
	Content  *string `json:"post_content"`
	Category string  `json:"category" binding:"required"`
	Images   []struct {
		URL      string `json:"image_url" binding:"required,url"`
		Position int32  `json:"position"`
	} `json:"images" binding:"omitempty,dive"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto := &model.CreatePostDTO{
		UserID:   middleware.UserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	for _, img := range req.Images {
		dto.Images = append(dto.Images, &model.PostImageInput{URL: img.URL, Position: img.Position})
	}

	created, err := h.posts.CreatePost(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.GetPostByID(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, err := h.posts.ListByUser(c.Request.Context(), middleware.UserID(c), c.Param("id"), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"posts": posts})
}

type updatePostRequest struct {
	Title   *string `json:"post_title" binding:"omitempty,max=200"`
	Content *string `json:"post_content"`
}

func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.posts.UpdatePost(c.Request.Context(), middleware.UserID(c), c.Param("id"), &model.UpdatePostDTO{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "deleted"})
}
