package auth_service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pulsefeed-backend/internal/custom_errors"
)

const (
	tokenTypeAuth    = "auth"
	tokenTypeRefresh = "refresh"
)

type tokenClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses the HS256 auth/refresh token pair.
type TokenManager struct {
	secret     []byte
	authTTL    time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, authTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		authTTL:    authTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *TokenManager) NewPair(userID string) (auth string, refresh string, err error) {
	auth, err = m.sign(userID, tokenTypeAuth, m.authTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.sign(userID, tokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return auth, refresh, nil
}

func (m *TokenManager) sign(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ParseAuth validates an auth token and returns the subject user id.
func (m *TokenManager) ParseAuth(token string) (string, error) {
	return m.parse(token, tokenTypeAuth)
}

// ParseRefresh validates a refresh token and returns the subject user id.
func (m *TokenManager) ParseRefresh(token string) (string, error) {
	return m.parse(token, tokenTypeRefresh)
}

func (m *TokenManager) parse(token, wantType string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", custom_errors.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || claims.TokenType != wantType || claims.UserID == "" {
		return "", custom_errors.ErrInvalidToken
	}
	return claims.UserID, nil
}
