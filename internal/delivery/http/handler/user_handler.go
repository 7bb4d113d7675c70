package handler

import (
	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/middleware"
	"pulsefeed-backend/internal/delivery/http/response"
	"pulsefeed-backend/internal/model"
	user_service "pulsefeed-backend/internal/service/user"
)

type UserHandler struct {
	users user_service.Service
}

func NewUserHandler(users user_service.Service) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Get(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)
	profile, err := h.users.GetProfile(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

type updateProfileRequest struct {
	Username      *string `json:"user_name" binding:"omitempty,min=3,max=30,username"`
	FullName      *string `json:"full_name" binding:"omitempty,max=100"`
	Bio           *string `json:"bio" binding:"omitempty,max=500"`
	Gender        *string `json:"gender"`
	PhoneNumber   *string `json:"phone_number"`
	ProfileImgURL *string `json:"profile_img_url" binding:"omitempty,url"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), &model.UpdateUserDTO{
		Username:      req.Username,
		FullName:      req.FullName,
		Bio:           req.Bio,
		Gender:        req.Gender,
		PhoneNumber:   req.PhoneNumber,
		ProfileImgURL: req.ProfileImgURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) CheckUsername(c *gin.Context) {
	username := c.Query("user_name")
	if username == "" {
		response.BadRequest(c, "user_name is required")
		return
	}

	available, err := h.users.UsernameAvailable(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"available": available})
}
