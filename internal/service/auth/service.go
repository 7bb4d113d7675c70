package auth_service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	"pulsefeed-backend/internal/model"
	user_repository "pulsefeed-backend/internal/repository/user"
)

const otpDigits = 6

type AuthService struct {
	userRepo user_repository.Repository
	tokens   *TokenManager
	sender   Sender
	otpTTL   time.Duration
	log      *logger.Logger
}

func NewAuthService(
	userRepo user_repository.Repository,
	tokens *TokenManager,
	sender Sender,
	otpTTL time.Duration,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		sender:   sender,
		otpTTL:   otpTTL,
		log:      log,
	}
}

func (s *AuthService) Signup(ctx context.Context, dto *SignupDTO) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	hashed, err := HashPassword(dto.Password)
	if err != nil {
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	username, err := s.generateUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &model.User{
		Email:    email,
		Username: username,
		FullName: dto.FullName,
		Password: hashed,
		ReferID:  dto.ReferID,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrEmailExists) {
			return nil, err
		}
		s.log.Error("Failed to create user", slog.String("email", email), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := s.issueOTP(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	if user.OTP == nil || *user.OTP != otp {
		return nil, custom_errors.ErrOTPInvalid
	}
	if !user.OTPExpiry.Valid || time.Now().After(user.OTPExpiry.Time) {
		return nil, custom_errors.ErrOTPInvalid
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		s.log.Error("Failed to mark user verified", slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return s.pairFor(user.ID)
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	return s.issueOTP(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			return nil, custom_errors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, user.Password)
	if err != nil {
		s.log.Error("Failed to verify password", slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrInvalidCredentials
	}
	if !ok {
		return nil, custom_errors.ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, custom_errors.ErrUserNotVerified
	}

	if err := s.userRepo.UpdateLastSignIn(ctx, user.ID); err != nil {
		s.log.Warn("Failed to record sign-in time", slog.String("user_id", user.ID), slog.String("error", err.Error()))
	}
	return s.pairFor(user.ID)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, custom_errors.ErrInvalidToken
	}
	return s.pairFor(userID)
}

func (s *AuthService) pairFor(userID string) (*TokenPair, error) {
	auth, refresh, err := s.tokens.NewPair(userID)
	if err != nil {
		s.log.Error("Failed to sign token pair", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}
	return &TokenPair{AuthToken: auth, RefreshToken: refresh}, nil
}

func (s *AuthService) issueOTP(ctx context.Context, user *model.User) error {
	code, err := generateOTP()
	if err != nil {
		s.log.Error("Failed to generate OTP", slog.String("error", err.Error()))
		return err
	}
	expiry := pgtype.Timestamptz{Time: time.Now().Add(s.otpTTL), Valid: true}
	if err := s.userRepo.SetOTP(ctx, user.ID, code, expiry); err != nil {
		s.log.Error("Failed to store OTP", slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if err := s.sender.SendOTP(ctx, user.Email, code); err != nil {
		s.log.Error("Failed to send OTP", slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return custom_errors.ErrExternalServiceError
	}
	return nil
}

// generateUsername derives a handle from the email local part and
// appends digits until it is free.
func (s *AuthService) generateUsername(ctx context.Context, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 0; i < 10; i++ {
		taken, err := s.userRepo.UsernameExists(ctx, candidate)
		if err != nil {
			s.log.Error("Failed to check username", slog.String("error", err.Error()))
			return "", custom_errors.ErrDatabaseQuery
		}
		if !taken {
			return candidate, nil
		}
		n, err := rand.Int(rand.Reader, big.NewInt(10000))
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%04d", base, n.Int64())
	}
	return "", custom_errors.ErrUsernameTaken
}

func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
