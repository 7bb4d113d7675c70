package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/delivery/http/response"
	"pulsefeed-backend/internal/model"
	feed_service "pulsefeed-backend/internal/service/feed"
)

type FeedHandler struct {
	feed feed_service.Service
}

func NewFeedHandler(feed feed_service.Service) *FeedHandler {
	return &FeedHandler{feed: feed}
}

type categoryFeedRequest struct {
	Category    string           `json:"category" binding:"required"`
	SessionSeed string           `json:"session_seed" binding:"required"`
	Cursor      model.FeedCursor `json:"cursor"`
	LastSeen    *time.Time       `json:"last_seen"`
}

func (h *FeedHandler) Category(c *gin.Context) {
	var req categoryFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.feed.CategoryFeed(c.Request.Context(), middleware.UserID(c), &model.CategoryFeedQuery{
		Category:    req.Category,
		Cursor:      req.Cursor,
		LastSeen:    req.LastSeen,
		SessionSeed: req.SessionSeed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func (h *FeedHandler) Home(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.feed.HomeFeed(c.Request.Context(), middleware.UserID(c), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"posts": items})
}

func (h *FeedHandler) TrendingByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		response.BadRequest(c, "category is required")
		return
	}

	items, err := h.feed.TrendingByCategory(c.Request.Context(), middleware.UserID(c), category)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"posts": items})
}

type randomFeedRequest struct {
	Category   string   `json:"category" binding:"required"`
	ExcludeIDs []string `json:"exclude_ids"`
	Limit      int      `json:"limit"`
}

func (h *FeedHandler) RandomByCategory(c *gin.Context) {
	var req randomFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.feed.RandomCategoryFeed(c.Request.Context(), middleware.UserID(c), req.Category, req.ExcludeIDs, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"posts": items})
}
