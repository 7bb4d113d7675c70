package handler

import (
	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/delivery/http/response"
	like_service "pulsefeed-backend/internal/service/like"
)

type LikeHandler struct {
	likes like_service.Service
}

func NewLikeHandler(likes like_service.Service) *LikeHandler {
	return &LikeHandler{likes: likes}
}

type likeRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

func (h *LikeHandler) Like(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	like, err := h.likes.LikePost(c.Request.Context(), req.PostID, middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, like)
}

func (h *LikeHandler) Unlike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.likes.UnlikePost(c.Request.Context(), req.PostID, middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "unliked"})
}

func (h *LikeHandler) IsLiked(c *gin.Context) {
	postID := c.Query("post_id")
	if postID == "" {
		response.BadRequest(c, "post_id is required")
		return
	}

	liked, err := h.likes.IsLiked(c.Request.Context(), postID, middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"liked": liked})
}

func (h *LikeHandler) Likers(c *gin.Context) {
	postID := c.Query("post_id")
	if postID == "" {
		response.BadRequest(c, "post_id is required")
		return
	}

	users, err := h.likes.UsersWhoLiked(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.likes.LikeCount(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"users": users, "count": count})
}
