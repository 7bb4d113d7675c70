package auth_service

import (
	"context"
	"log/slog"

	"pulsefeed-backend/internal/logger"
)

// Sender delivers one-time codes to the user. The production deployment
// plugs in a mail sender; the default just logs.
//
//go:generate mockery --name Sender --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename OTPSender.go
type Sender interface {
	SendOTP(ctx context.Context, email, code string) error
}

type LogSender struct {
	log *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendOTP(ctx context.Context, email, code string) error {
	s.log.Info("OTP issued", slog.String("email", email), slog.String("code", code))
	return nil
}
