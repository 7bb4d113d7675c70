package auth_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
	user_memory "pulsefeed-backend/internal/repository/user/memory"
)

// recordingSender keeps the last code instead of delivering it.
type recordingSender struct {
	email string
	code  string
}

func (s *recordingSender) SendOTP(ctx context.Context, email, code string) error {
	s.email = email
	s.code = code
	return nil
}

type authFixture struct {
	svc    *AuthService
	users  *user_memory.UserRepository
	sender *recordingSender
	tokens *TokenManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	log := logger.New("test")

	fx := &authFixture{
		users:  user_memory.NewUserRepository(log),
		sender: &recordingSender{},
		tokens: NewTokenManager("test-secret", 15*time.Minute, 720*time.Hour),
	}
	fx.svc = NewAuthService(fx.users, fx.tokens, fx.sender, 10*time.Minute, log)
	return fx
}

func (fx *authFixture) signup(t *testing.T, email, password string) {
	t.Helper()
	_, err := fx.svc.Signup(context.Background(), &SignupDTO{Email: email, Password: password})
	require.NoError(t, err)
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("creates unverified user and sends code", func(t *testing.T) {
		fx := newAuthFixture(t)

		user, err := fx.svc.Signup(context.Background(), &SignupDTO{
			Email:    "Ada.Lovelace@Example.com",
			Password: "correct horse",
		})
		require.NoError(t, err)

		assert.Equal(t, "ada.lovelace@example.com", user.Email)
		assert.Equal(t, "adalovelace", user.Username)
		assert.False(t, user.Verified)
		assert.Equal(t, "ada.lovelace@example.com", fx.sender.email)
		assert.Len(t, fx.sender.code, otpDigits)

		stored, err := fx.users.GetByEmail(context.Background(), user.Email)
		require.NoError(t, err)
		require.NotNil(t, stored.OTP)
		assert.Equal(t, fx.sender.code, *stored.OTP)
		assert.NotEqual(t, "correct horse", stored.Password)
	})

	t.Run("duplicate email", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")

		_, err := fx.svc.Signup(context.Background(), &SignupDTO{
			Email:    "ada@example.com",
			Password: "another pass",
		})
		assert.ErrorIs(t, err, custom_errors.ErrEmailExists)
	})

	t.Run("colliding handles get suffixed", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")

		user, err := fx.svc.Signup(context.Background(), &SignupDTO{
			Email:    "ada@other.com",
			Password: "correct horse",
		})
		require.NoError(t, err)
		assert.NotEqual(t, "ada", user.Username)
		assert.Contains(t, user.Username, "ada")
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	t.Run("valid code issues tokens", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")

		pair, err := fx.svc.VerifyOTP(context.Background(), "ada@example.com", fx.sender.code)
		require.NoError(t, err)
		require.NotNil(t, pair)

		stored, err := fx.users.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.True(t, stored.Verified)
		assert.Nil(t, stored.OTP)

		userID, err := fx.tokens.ParseAuth(pair.AuthToken)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, userID)
	})

	t.Run("wrong code", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")

		_, err := fx.svc.VerifyOTP(context.Background(), "ada@example.com", "000000")
		assert.ErrorIs(t, err, custom_errors.ErrOTPInvalid)
	})

	t.Run("unknown email", func(t *testing.T) {
		fx := newAuthFixture(t)

		_, err := fx.svc.VerifyOTP(context.Background(), "ghost@example.com", "123456")
		assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
	})
}

func TestAuthService_ResendOTP(t *testing.T) {
	fx := newAuthFixture(t)
	fx.signup(t, "ada@example.com", "correct horse")

	err := fx.svc.ResendOTP(context.Background(), "ada@example.com")
	require.NoError(t, err)

	stored, err := fx.users.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.OTP)
	assert.Equal(t, fx.sender.code, *stored.OTP)
}

func TestAuthService_Login(t *testing.T) {
	t.Run("verified user", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")
		_, err := fx.svc.VerifyOTP(context.Background(), "ada@example.com", fx.sender.code)
		require.NoError(t, err)

		pair, err := fx.svc.Login(context.Background(), "ada@example.com", "correct horse")
		require.NoError(t, err)
		require.NotNil(t, pair)

		stored, err := fx.users.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.True(t, stored.LastSignIn.Valid)
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")
		_, err := fx.svc.VerifyOTP(context.Background(), "ada@example.com", fx.sender.code)
		require.NoError(t, err)

		_, err = fx.svc.Login(context.Background(), "ada@example.com", "wrong horse")
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		fx := newAuthFixture(t)

		_, err := fx.svc.Login(context.Background(), "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCredentials)
	})

	t.Run("unverified user", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")

		_, err := fx.svc.Login(context.Background(), "ada@example.com", "correct horse")
		assert.ErrorIs(t, err, custom_errors.ErrUserNotVerified)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")
		pair, err := fx.svc.VerifyOTP(context.Background(), "ada@example.com", fx.sender.code)
		require.NoError(t, err)

		fresh, err := fx.svc.Refresh(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, fresh.AuthToken)
		assert.NotEmpty(t, fresh.RefreshToken)
	})

	t.Run("auth token rejected as refresh", func(t *testing.T) {
		fx := newAuthFixture(t)
		fx.signup(t, "ada@example.com", "correct horse")
		pair, err := fx.svc.VerifyOTP(context.Background(), "ada@example.com", fx.sender.code)
		require.NoError(t, err)

		_, err = fx.svc.Refresh(context.Background(), pair.AuthToken)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})

	t.Run("deleted user", func(t *testing.T) {
		fx := newAuthFixture(t)
		refresh, err := fx.tokens.sign("missing-user", tokenTypeRefresh, time.Hour)
		require.NoError(t, err)

		_, err = fx.svc.Refresh(context.Background(), refresh)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})
}

func TestTokenManager(t *testing.T) {
	t.Run("pair round trip", func(t *testing.T) {
		m := NewTokenManager("secret", time.Minute, time.Hour)
		auth, refresh, err := m.NewPair("user-1")
		require.NoError(t, err)

		id, err := m.ParseAuth(auth)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)

		id, err = m.ParseRefresh(refresh)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
	})

	t.Run("type mismatch", func(t *testing.T) {
		m := NewTokenManager("secret", time.Minute, time.Hour)
		auth, refresh, err := m.NewPair("user-1")
		require.NoError(t, err)

		_, err = m.ParseRefresh(auth)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
		_, err = m.ParseAuth(refresh)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		m := NewTokenManager("secret", time.Minute, time.Hour)
		auth, _, err := m.NewPair("user-1")
		require.NoError(t, err)

		other := NewTokenManager("different", time.Minute, time.Hour)
		_, err = other.ParseAuth(auth)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		m := NewTokenManager("secret", -time.Minute, time.Hour)
		auth, _, err := m.NewPair("user-1")
		require.NoError(t, err)

		_, err = m.ParseAuth(auth)
		assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	t.Run("hash and verify", func(t *testing.T) {
		encoded, err := HashPassword("correct horse")
		require.NoError(t, err)

		ok, err := VerifyPassword("correct horse", encoded)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = VerifyPassword("wrong horse", encoded)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unique salts", func(t *testing.T) {
		a, err := HashPassword("same input")
		require.NoError(t, err)
		b, err := HashPassword("same input")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("malformed encoding", func(t *testing.T) {
		_, err := VerifyPassword("anything", "not-an-argon2-hash")
		assert.Error(t, err)
	})
}
