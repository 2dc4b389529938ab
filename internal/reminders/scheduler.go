// Package reminders pushes the daily horoscope to subscribers at their chosen
// local time.
package reminders

import (
	"context"
	"sync"
	"time"

	"astrobot/internal/model"

	"github.com/rs/zerolog"
)

// SchedulerConfig holds configuration for the reminder scheduler.
type SchedulerConfig struct {
	// Location is the reference timezone reminder times are read in.
	Location *time.Location
	// CheckInterval is how often due users are looked up.
	CheckInterval time.Duration
}

// DefaultSchedulerConfig returns the default scheduler configuration.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Location:      time.UTC,
		CheckInterval: time.Minute,
	}
}

// ScanStats summarizes one scan.
type ScanStats struct {
	Total    int
	Sent     int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Scheduler scans for due users on a fixed interval. A scan only picks users
// whose reminder time equals the current minute; missed minutes are not
// caught up.
type Scheduler struct {
	config     SchedulerConfig
	users      UserStore
	horoscopes Horoscopes
	sender     *Sender
	metrics    *Metrics
	now        func() time.Time
	logger     zerolog.Logger
	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
}

// NewScheduler creates a new reminder scheduler.
func NewScheduler(
	config SchedulerConfig,
	users UserStore,
	horoscopes Horoscopes,
	sender *Sender,
	metrics *Metrics,
	logger zerolog.Logger,
) *Scheduler {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &Scheduler{
		config:     config,
		users:      users,
		horoscopes: horoscopes,
		sender:     sender,
		metrics:    metrics,
		now:        time.Now,
		logger:     logger.With().Str("component", "reminder_scheduler").Logger(),
		stopCh:     make(chan struct{}),
	}
}

// Start runs the scheduler loop until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Info().
		Str("timezone", s.config.Location.String()).
		Dur("interval", s.config.CheckInterval).
		Msg("reminder scheduler started")

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reminder scheduler stopped by context")
			return
		case <-s.stopCh:
			s.logger.Info().Msg("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.Scan(ctx, s.now())
		}
	}
}

// Stop stops the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
}

// IsRunning returns whether the scheduler loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// RunNow forces a scan at the current time.
func (s *Scheduler) RunNow(ctx context.Context) ScanStats {
	s.logger.Info().Msg("manual reminder scan triggered")
	return s.Scan(ctx, s.now())
}

// Scan delivers the horoscope to every user due at the minute of now.
// Per-user failures are logged and counted; they never stop the scan.
func (s *Scheduler) Scan(ctx context.Context, now time.Time) ScanStats {
	start := time.Now()
	var stats ScanStats

	local := now.In(s.config.Location)
	at := model.ClockOf(local)
	date := model.DateKey(local)

	users, err := s.users.ListDueUsers(ctx, at, date)
	if err != nil {
		s.logger.Error().Err(err).Str("time", at.String()).Msg("failed to list due users")
		return stats
	}
	stats.Total = len(users)
	s.metrics.SetDue(stats.Total)

	for _, u := range users {
		if err := ctx.Err(); err != nil {
			s.logger.Info().
				Int("processed", stats.Sent+stats.Failed+stats.Skipped).
				Int("remaining", stats.Total-stats.Sent-stats.Failed-stats.Skipped).
				Msg("reminder scan interrupted")
			break
		}

		if !u.Sign.Valid() {
			stats.Skipped++
			continue
		}

		text, err := s.horoscopes.HoroscopeFor(ctx, u.Sign, u.Lang, local)
		if err != nil {
			stats.Failed++
			s.metrics.IncSent(StatusRenderError)
			s.logger.Error().Err(err).Int64("user_id", u.UserID).Msg("failed to build reminder")
			continue
		}

		if err := s.sender.Deliver(ctx, u.UserID, text); err != nil {
			stats.Failed++
			s.logger.Error().Err(err).Int64("user_id", u.UserID).Msg("failed to deliver reminder")
			continue
		}
		stats.Sent++

		if err := s.users.MarkNotified(ctx, u.UserID, date); err != nil {
			s.logger.Error().Err(err).Int64("user_id", u.UserID).Msg("failed to mark user notified")
		}
	}

	stats.Duration = time.Since(start)
	s.metrics.ObserveScan(stats.Duration.Seconds())

	if stats.Total > 0 {
		s.logger.Info().
			Str("time", at.String()).
			Int("total", stats.Total).
			Int("sent", stats.Sent).
			Int("skipped", stats.Skipped).
			Int("failed", stats.Failed).
			Dur("duration", stats.Duration).
			Msg("reminder scan finished")
	}
	return stats
}
