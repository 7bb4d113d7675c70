package auth_service

import (
	"context"

	"pulsefeed-backend/internal/model"
)

type SignupDTO struct {
	Email    string  `json:"user_email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
	ReferID  *string `json:"refer_id,omitempty"`
}

type TokenPair struct {
	AuthToken    string `json:"auth_token"`
	RefreshToken string `json:"refresh_token"`
}

//go:generate mockery --name Service --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename AuthService.go
type Service interface {
	// Signup registers an unverified account and sends a one-time code
	// to the given address.
	Signup(ctx context.Context, dto *SignupDTO) (*model.User, error)
	// VerifyOTP checks the code, marks the account verified and signs
	// the first token pair.
	VerifyOTP(ctx context.Context, email, otp string) (*TokenPair, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
