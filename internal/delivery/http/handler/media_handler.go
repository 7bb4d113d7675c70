package handler

import (
	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/response"
	media_service "pulsefeed-backend/internal/service/media"
)

type MediaHandler struct {
	storage media_service.Storage
}

func NewMediaHandler(storage media_service.Storage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer src.Close()

	url, err := h.storage.Save(c.Request.Context(), file.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"url": url})
}
