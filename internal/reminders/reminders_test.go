package reminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"astrobot/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserStore implements UserStore for testing.
type mockUserStore struct {
	mu       sync.Mutex
	users    map[int64]*model.UserProfile
	disabled []int64
	listErr  error
}

func newMockUserStore(users ...model.UserProfile) *mockUserStore {
	m := &mockUserStore{users: make(map[int64]*model.UserProfile)}
	for i := range users {
		u := users[i]
		m.users[u.UserID] = &u
	}
	return m
}

func (m *mockUserStore) ListDueUsers(ctx context.Context, at model.ClockTime, date string) ([]model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.UserProfile
	for id := int64(1); id <= int64(len(m.users)); id++ {
		u, ok := m.users[id]
		if !ok {
			continue
		}
		if u.NotifyEnabled && u.Sign != "" && u.NotifyTime == at && u.LastNotified != date {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserStore) MarkNotified(ctx context.Context, userID int64, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].LastNotified = date
	return nil
}

func (m *mockUserStore) DisableNotifications(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].NotifyEnabled = false
	m.disabled = append(m.disabled, userID)
	return nil
}

type stubHoroscopes struct {
	fail map[model.Sign]error
}

func (s stubHoroscopes) HoroscopeFor(ctx context.Context, sign model.Sign, lang model.Lang, date time.Time) (string, error) {
	if err := s.fail[sign]; err != nil {
		return "", err
	}
	return string(sign) + "/" + string(lang) + "/" + model.DateKey(date), nil
}

// mockNotifier records sent messages and fails for configured chats.
type mockNotifier struct {
	mu   sync.Mutex
	sent map[int64][]string
	fail map[int64]error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(map[int64][]string), fail: make(map[int64]error)}
}

func (n *mockNotifier) SendText(ctx context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.fail[chatID]; err != nil {
		return err
	}
	n.sent[chatID] = append(n.sent[chatID], text)
	return nil
}

func (n *mockNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, msgs := range n.sent {
		total += len(msgs)
	}
	return total
}

var madrid = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(err)
	}
	return loc
}()

func subscriber(id int64, sign model.Sign, hh, mm int) model.UserProfile {
	return model.UserProfile{
		UserID:        id,
		Sign:          sign,
		Lang:          model.LangEN,
		NotifyEnabled: true,
		NotifyTime:    model.ClockTime{Hour: hh, Minute: mm},
	}
}

func newTestScheduler(users *mockUserStore, h Horoscopes, n Notifier, m *Metrics) *Scheduler {
	sender := NewSender(n, users, SenderConfig{RatePerSecond: 1000, Burst: 100}, m, zerolog.Nop())
	return NewScheduler(SchedulerConfig{Location: madrid, CheckInterval: time.Minute}, users, h, sender, m, zerolog.Nop())
}

func TestScanExactMinute(t *testing.T) {
	users := newMockUserStore(subscriber(1, model.Leo, 9, 0))
	notifier := newMockNotifier()
	s := newTestScheduler(users, stubHoroscopes{}, notifier, nil)
	ctx := context.Background()

	stats := s.Scan(ctx, time.Date(2025, time.November, 19, 9, 1, 0, 0, madrid))
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, notifier.count())

	stats = s.Scan(ctx, time.Date(2025, time.November, 19, 9, 0, 30, 0, madrid))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Sent)
	require.Len(t, notifier.sent[1], 1)
	assert.Equal(t, "leo/en/2025-11-19", notifier.sent[1][0])
	assert.Equal(t, "2025-11-19", users.users[1].LastNotified)

	// A second tick inside the same minute does not deliver again.
	stats = s.Scan(ctx, time.Date(2025, time.November, 19, 9, 0, 50, 0, madrid))
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 1, notifier.count())

	// Next day delivers again.
	s.Scan(ctx, time.Date(2025, time.November, 20, 9, 0, 0, 0, madrid))
	assert.Equal(t, 2, notifier.count())
}

func TestScanUsesReferenceTimezone(t *testing.T) {
	users := newMockUserStore(subscriber(1, model.Aries, 9, 0))
	notifier := newMockNotifier()
	s := newTestScheduler(users, stubHoroscopes{}, notifier, nil)

	// 08:00 UTC is 09:00 in Madrid in November.
	stats := s.Scan(context.Background(), time.Date(2025, time.November, 19, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, stats.Sent)
}

func TestScanContinuesAfterFailures(t *testing.T) {
	users := newMockUserStore(
		subscriber(1, model.Leo, 9, 0),
		subscriber(2, model.Virgo, 9, 0),
		subscriber(3, model.Libra, 9, 0),
		subscriber(4, model.Pisces, 9, 0),
	)
	notifier := newMockNotifier()
	notifier.fail[2] = errors.New("connection reset")
	horoscopes := stubHoroscopes{fail: map[model.Sign]error{model.Libra: errors.New("boom")}}

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg, "test")
	s := newTestScheduler(users, horoscopes, notifier, metrics)

	stats := s.Scan(context.Background(), time.Date(2025, time.November, 19, 9, 0, 0, 0, madrid))
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Sent)
	assert.Equal(t, 2, stats.Failed)
	assert.Len(t, notifier.sent[1], 1)
	assert.Len(t, notifier.sent[4], 1)

	assert.Equal(t, "", users.users[2].LastNotified)
	assert.True(t, users.users[2].NotifyEnabled)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RemindersSentTotal.WithLabelValues(StatusSent)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RemindersSentTotal.WithLabelValues(StatusFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RemindersSentTotal.WithLabelValues(StatusRenderError)))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.RemindersDue))
}

func TestScanListFailure(t *testing.T) {
	users := newMockUserStore()
	users.listErr = errors.New("database is locked")
	s := newTestScheduler(users, stubHoroscopes{}, newMockNotifier(), nil)

	stats := s.Scan(context.Background(), time.Now())
	assert.Equal(t, ScanStats{}, stats)
}

func TestScanStopsOnCancelledContext(t *testing.T) {
	users := newMockUserStore(subscriber(1, model.Leo, 9, 0), subscriber(2, model.Leo, 9, 0))
	notifier := newMockNotifier()
	s := newTestScheduler(users, stubHoroscopes{}, notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := s.Scan(ctx, time.Date(2025, time.November, 19, 9, 0, 0, 0, madrid))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 0, stats.Sent)
	assert.Equal(t, 0, notifier.count())
}

func TestSenderTelegramErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   string
		wantDisabled bool
	}{
		{name: "blocked", err: &TelegramError{Code: 403, Message: "Forbidden: bot was blocked by the user"}, wantStatus: StatusBlocked, wantDisabled: true},
		{name: "rate limited", err: &TelegramError{Code: 429, Message: "Too Many Requests", RetryAfter: 5}, wantStatus: StatusRateLimited},
		{name: "bad request", err: &TelegramError{Code: 400, Message: "chat not found"}, wantStatus: StatusBadRequest},
		{name: "wrapped blocked", err: errors.Join(errors.New("send"), &TelegramError{Code: 403}), wantStatus: StatusBlocked, wantDisabled: true},
		{name: "network", err: errors.New("dial tcp: timeout"), wantStatus: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newMockUserStore(subscriber(1, model.Leo, 9, 0))
			notifier := newMockNotifier()
			notifier.fail[1] = tt.err
			metrics := NewMetrics(prometheus.NewRegistry(), "test")
			sender := NewSender(notifier, users, DefaultSenderConfig(), metrics, zerolog.Nop())

			err := sender.Deliver(context.Background(), 1, "hello")
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RemindersSentTotal.WithLabelValues(tt.wantStatus)))
			assert.Equal(t, !tt.wantDisabled, users.users[1].NotifyEnabled)
		})
	}
}

func TestSenderRateLimit(t *testing.T) {
	users := newMockUserStore(subscriber(1, model.Leo, 9, 0))
	notifier := newMockNotifier()
	metrics := NewMetrics(prometheus.NewRegistry(), "test")
	sender := NewSender(notifier, users, SenderConfig{RatePerSecond: 0.001, Burst: 1}, metrics, zerolog.Nop())

	require.NoError(t, sender.Deliver(context.Background(), 1, "first"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := sender.Deliver(ctx, 1, "second")
	assert.Error(t, err)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RateLimitWaits))
}

func TestIsTelegramError(t *testing.T) {
	tgErr, ok := IsTelegramError(&TelegramError{Code: 429, RetryAfter: 3})
	require.True(t, ok)
	assert.Equal(t, 3, tgErr.RetryAfter)

	_, ok = IsTelegramError(errors.New("plain"))
	assert.False(t, ok)
}

func TestSchedulerStartStop(t *testing.T) {
	users := newMockUserStore(subscriber(1, model.Leo, 9, 0))
	notifier := newMockNotifier()
	s := newTestScheduler(users, stubHoroscopes{}, notifier, nil)
	s.config.CheckInterval = 10 * time.Millisecond
	s.now = func() time.Time { return time.Date(2025, time.November, 19, 9, 0, 0, 0, madrid) }

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	assert.Eventually(t, func() bool { return notifier.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, s.IsRunning())

	s.Stop()
	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, s.IsRunning())
	assert.Equal(t, 1, notifier.count())
}

func TestRunNow(t *testing.T) {
	users := newMockUserStore(subscriber(1, model.Leo, 7, 30))
	notifier := newMockNotifier()
	s := newTestScheduler(users, stubHoroscopes{}, notifier, nil)
	s.now = func() time.Time { return time.Date(2025, time.November, 19, 7, 30, 0, 0, madrid) }

	stats := s.RunNow(context.Background())
	assert.Equal(t, 1, stats.Sent)
}
