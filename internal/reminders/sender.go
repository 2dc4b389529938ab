package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// TelegramError represents an error from Telegram API.
type TelegramError struct {
	Code       int
	Message    string
	RetryAfter int // seconds, set on 429
}

func (e *TelegramError) Error() string {
	return fmt.Sprintf("telegram error %d: %s", e.Code, e.Message)
}

// IsTelegramError checks if the error is a TelegramError.
func IsTelegramError(err error) (*TelegramError, bool) {
	var tgErr *TelegramError
	if errors.As(err, &tgErr) {
		return tgErr, true
	}
	return nil, false
}

// SenderConfig bounds the delivery rate.
type SenderConfig struct {
	// RatePerSecond is the sustained number of messages per second.
	RatePerSecond float64
	// Burst is the number of messages sent back to back before throttling.
	Burst int
}

func DefaultSenderConfig() SenderConfig {
	return SenderConfig{RatePerSecond: 20, Burst: 30}
}

// Sender delivers reminders one at a time, throttled, without retries.
type Sender struct {
	notifier Notifier
	users    UserStore
	limiter  *rate.Limiter
	metrics  *Metrics
	logger   zerolog.Logger
}

func NewSender(notifier Notifier, users UserStore, cfg SenderConfig, metrics *Metrics, logger zerolog.Logger) *Sender {
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultSenderConfig().RatePerSecond
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	return &Sender{
		notifier: notifier,
		users:    users,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		metrics:  metrics,
		logger:   logger.With().Str("component", "reminder_sender").Logger(),
	}
}

// Deliver sends text to userID. A user who blocked the bot gets
// notifications disabled.
func (s *Sender) Deliver(ctx context.Context, userID int64, text string) error {
	if !s.limiter.Allow() {
		s.metrics.IncRateLimitWaits()
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	err := s.notifier.SendText(ctx, userID, text)
	if err == nil {
		s.metrics.IncSent(StatusSent)
		s.logger.Debug().Int64("user_id", userID).Dur("took", time.Since(start)).Msg("reminder sent")
		return nil
	}

	status := StatusFailed
	if tgErr, ok := IsTelegramError(err); ok {
		switch tgErr.Code {
		case 403:
			status = StatusBlocked
			s.logger.Info().Int64("user_id", userID).Msg("user blocked bot, disabling reminders")
			if derr := s.users.DisableNotifications(ctx, userID); derr != nil {
				s.logger.Error().Err(derr).Int64("user_id", userID).Msg("failed to disable reminders")
			}
		case 429:
			status = StatusRateLimited
			s.logger.Warn().Int64("user_id", userID).Int("retry_after", tgErr.RetryAfter).
				Msg("rate limited by Telegram, reminder dropped")
		case 400:
			status = StatusBadRequest
			s.logger.Error().Err(err).Int64("user_id", userID).Msg("bad request to Telegram")
		}
	}
	s.metrics.IncSent(status)
	return err
}
