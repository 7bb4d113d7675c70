package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/delivery/http/response"
	follow_service "pulsefeed-backend/internal/service/follow"
)

type FollowHandler struct {
	follows follow_service.Service
}

func NewFollowHandler(follows follow_service.Service) *FollowHandler {
	return &FollowHandler{follows: follows}
}

type followRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *FollowHandler) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.follows.Follow(c.Request.Context(), middleware.UserID(c), req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "following"})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.follows.Unfollow(c.Request.Context(), middleware.UserID(c), req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "unfollowed"})
}

func (h *FollowHandler) IsFollowing(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.BadRequest(c, "user_id is required")
		return
	}

	following, err := h.follows.IsFollowing(c.Request.Context(), middleware.UserID(c), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	mutual := false
	if following {
		mutual, err = h.follows.IsMutual(c.Request.Context(), middleware.UserID(c), userID)
		if err != nil {
			response.Error(c, err)
			return
		}
	}
	response.OK(c, gin.H{"following": following, "mutual": mutual})
}

func (h *FollowHandler) Followers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.follows.Followers(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"users": users})
}

func (h *FollowHandler) Following(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.follows.Following(c.Request.Context(), c.Param("id"), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"users": users})
}

func (h *FollowHandler) Suggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	users, err := h.follows.Suggestions(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"users": users})
}
