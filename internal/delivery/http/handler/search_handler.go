package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/response"
	"pulsefeed-backend/internal/model"
	search_service "pulsefeed-backend/internal/service/search"
)

type SearchHandler struct {
	search search_service.Service
}

func NewSearchHandler(search search_service.Service) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) Users(c *gin.Context) {
	query := model.UserSearchQuery{Query: c.Query("q")}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		query.Limit = limit
	}
	if raw := c.Query("next_rank"); raw != "" {
		if rank, err := strconv.ParseFloat(raw, 64); err == nil {
			query.LastRank = &rank
		}
	}
	if raw := c.Query("next_similarity"); raw != "" {
		if similarity, err := strconv.ParseFloat(raw, 64); err == nil {
			query.LastSimilarity = &similarity
		}
	}

	page, err := h.search.SearchUsers(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}
