package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/delivery/http/response"
	"pulsefeed-backend/internal/model"
	comment_service "pulsefeed-backend/internal/service/comment"
)

type CommentHandler struct {
	comments comment_service.Service
}

func NewCommentHandler(comments comment_service.Service) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	PostID          string  `json:"post_id" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
	Text            string  `json:"comment_text" binding:"required,max=2000"`
	For             string  `json:"comment_for" binding:"required,oneof=support deny"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), &comment_service.CreateCommentDTO{
		PostID:          req.PostID,
		UserID:          middleware.UserID(c),
		ParentCommentID: req.ParentCommentID,
		Text:            req.Text,
		For:             model.CommentFor(req.For),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

type updateCommentRequest struct {
	Text string `json:"comment_text" binding:"required,max=2000"`
	For  string `json:"comment_for" binding:"required,oneof=support deny"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.UpdateComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Text, model.CommentFor(req.For))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.DeleteComment(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "deleted"})
}

func (h *CommentHandler) ListForPost(c *gin.Context) {
	postID := c.Query("post_id")
	if postID == "" {
		response.BadRequest(c, "post_id is required")
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	comments, err := h.comments.ListForPost(c.Request.Context(), middleware.UserID(c), postID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"comments": comments})
}

func (h *CommentHandler) ListReplies(c *gin.Context) {
	parentID := c.Query("comment_id")
	if parentID == "" {
		response.BadRequest(c, "comment_id is required")
		return
	}
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	replies, err := h.comments.ListReplies(c.Request.Context(), middleware.UserID(c), parentID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"replies": replies})
}
