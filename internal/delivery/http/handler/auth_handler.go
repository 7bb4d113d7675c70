package handler

import (
	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/delivery/http/response"
	auth_service "pulsefeed-backend/internal/service/auth"
)

type AuthHandler struct {
	auth auth_service.Service
}

func NewAuthHandler(auth auth_service.Service) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signupRequest struct {
	Email    string  `json:"user_email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName *string `json:"full_name"`
	ReferID  *string `json:"refer_id"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), &auth_service.SignupDTO{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		ReferID:  req.ReferID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

type verifyOTPRequest struct {
	Email string `json:"user_email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pair)
}

type resendOTPRequest struct {
	Email string `json:"user_email" binding:"required,email"`
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.auth.ResendOTP(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"status": "sent"})
}

type loginRequest struct {
	Email    string `json:"user_email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pair)
}
