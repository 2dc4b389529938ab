package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"astrobot/internal/content"
	"astrobot/internal/db"
	"astrobot/internal/horoscope"
	"astrobot/internal/locks"
	"astrobot/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInner struct {
	mock.Mock
}

func (m *mockInner) GetPattern(ctx context.Context, sign model.Sign, date string) (*model.DailyPattern, error) {
	args := m.Called(ctx, sign, date)
	p, _ := args.Get(0).(*model.DailyPattern)
	return p, args.Error(1)
}

func (m *mockInner) RecentPatterns(ctx context.Context, sign model.Sign, limit int) ([]model.DailyPattern, error) {
	args := m.Called(ctx, sign, limit)
	p, _ := args.Get(0).([]model.DailyPattern)
	return p, args.Error(1)
}

func (m *mockInner) SavePattern(ctx context.Context, p model.DailyPattern, historySize int) (model.DailyPattern, error) {
	args := m.Called(ctx, p, historySize)
	stored, _ := args.Get(0).(model.DailyPattern)
	return stored, args.Error(1)
}

func setup(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestGetPatternReadThrough(t *testing.T) {
	mr, rdb := setup(t)
	ctx := context.Background()
	stored := &model.DailyPattern{Sign: model.Leo, Date: "2025-11-19", Mood: 2, Color: 4, Number: 7}

	inner := new(mockInner)
	inner.On("GetPattern", mock.Anything, model.Leo, "2025-11-19").Return(stored, nil).Once()

	s := NewPatternStore(inner, rdb, time.Hour, zerolog.Nop())

	got, err := s.GetPattern(ctx, model.Leo, "2025-11-19")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.True(t, mr.Exists("astrobot:pattern:leo:2025-11-19"))

	// Served from Redis: the mock allows a single inner call.
	got, err = s.GetPattern(ctx, model.Leo, "2025-11-19")
	require.NoError(t, err)
	assert.Equal(t, *stored, *got)
	inner.AssertExpectations(t)

	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists("astrobot:pattern:leo:2025-11-19"))
}

func TestGetPatternMissIsNotCached(t *testing.T) {
	mr, rdb := setup(t)
	inner := new(mockInner)
	inner.On("GetPattern", mock.Anything, model.Aries, "2025-11-19").Return(nil, nil).Twice()

	s := NewPatternStore(inner, rdb, time.Hour, zerolog.Nop())
	for i := 0; i < 2; i++ {
		got, err := s.GetPattern(context.Background(), model.Aries, "2025-11-19")
		require.NoError(t, err)
		assert.Nil(t, got)
	}
	assert.Empty(t, mr.Keys())
	inner.AssertExpectations(t)
}

func TestSavePatternWritesThrough(t *testing.T) {
	mr, rdb := setup(t)
	p := model.DailyPattern{Sign: model.Libra, Date: "2025-11-20", Number: 3}

	inner := new(mockInner)
	inner.On("SavePattern", mock.Anything, p, 60).Return(p, nil).Once()
	s := NewPatternStore(inner, rdb, time.Hour, zerolog.Nop())

	got, err := s.SavePattern(context.Background(), p, 60)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.True(t, mr.Exists("astrobot:pattern:libra:2025-11-20"))

	failing := new(mockInner)
	q := model.DailyPattern{Sign: model.Libra, Date: "2025-11-21"}
	failing.On("SavePattern", mock.Anything, q, 60).Return(nil, errors.New("disk full")).Once()
	s = NewPatternStore(failing, rdb, time.Hour, zerolog.Nop())

	_, err = s.SavePattern(context.Background(), q, 60)
	assert.Error(t, err)
	assert.False(t, mr.Exists("astrobot:pattern:libra:2025-11-21"))
}

func TestSavePatternCachesStoredRowOnConflict(t *testing.T) {
	mr, rdb := setup(t)
	ctx := context.Background()
	stored := model.DailyPattern{Sign: model.Leo, Date: "2025-11-19", Mood: 2, Number: 7}
	rejected := model.DailyPattern{Sign: model.Leo, Date: "2025-11-19", Mood: 5, Number: 1}

	inner := new(mockInner)
	inner.On("SavePattern", mock.Anything, rejected, 60).Return(stored, nil).Once()
	s := NewPatternStore(inner, rdb, time.Hour, zerolog.Nop())

	got, err := s.SavePattern(ctx, rejected, 60)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	// Served from Redis without touching the inner store.
	cached, err := s.GetPattern(ctx, model.Leo, "2025-11-19")
	require.NoError(t, err)
	assert.Equal(t, stored, *cached)
	assert.True(t, mr.Exists("astrobot:pattern:leo:2025-11-19"))
	inner.AssertExpectations(t)
}

// flakyDB fails the first GetPattern call the way a busy SQLite file does.
type flakyDB struct {
	*db.DB
	failures int
}

func (f *flakyDB) GetPattern(ctx context.Context, sign model.Sign, date string) (*model.DailyPattern, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("database is locked")
	}
	return f.DB.GetPattern(ctx, sign, date)
}

func TestGeneratorAndCacheAgreeWithSQLiteAfterReadFailure(t *testing.T) {
	_, rdb := setup(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	database, err := db.NewDB(filepath.Join(t.TempDir(), "astrobot.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	for i := 0; i < 20; i++ {
		day := time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		date := model.DateKey(day)
		stored := model.DailyPattern{Sign: model.Leo, Date: date, Mood: 100 + i, Number: 9}
		_, err := database.SavePattern(ctx, stored, 60)
		require.NoError(t, err)

		flaky := &flakyDB{DB: database, failures: 1}
		s := NewPatternStore(flaky, rdb, time.Hour, logger)
		g := horoscope.NewGenerator(s, content.New(model.LangEN), locks.NewKeyed(), horoscope.DefaultGeneratorConfig(), logger)

		got, err := g.GetOrCreate(ctx, model.Leo, day)
		require.NoError(t, err)
		assert.Equal(t, stored, got, date)

		cached, err := s.GetPattern(ctx, model.Leo, date)
		require.NoError(t, err)
		require.NotNil(t, cached)
		assert.Equal(t, stored, *cached, date)
	}
}

func TestRedisDownFallsThrough(t *testing.T) {
	mr, rdb := setup(t)
	stored := &model.DailyPattern{Sign: model.Leo, Date: "2025-11-19", Number: 5}
	inner := new(mockInner)
	inner.On("GetPattern", mock.Anything, model.Leo, "2025-11-19").Return(stored, nil).Once()

	s := NewPatternStore(inner, rdb, time.Hour, zerolog.Nop())
	mr.Close()

	got, err := s.GetPattern(context.Background(), model.Leo, "2025-11-19")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestCorruptEntryIsDropped(t *testing.T) {
	mr, rdb := setup(t)
	require.NoError(t, mr.Set("astrobot:pattern:leo:2025-11-19", "{not json"))

	stored := &model.DailyPattern{Sign: model.Leo, Date: "2025-11-19", Number: 5}
	inner := new(mockInner)
	inner.On("GetPattern", mock.Anything, model.Leo, "2025-11-19").Return(stored, nil).Once()

	s := NewPatternStore(inner, rdb, time.Hour, zerolog.Nop())
	got, err := s.GetPattern(context.Background(), model.Leo, "2025-11-19")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Number)

	val, err := mr.Get("astrobot:pattern:leo:2025-11-19")
	require.NoError(t, err)
	assert.Contains(t, val, `"number":5`)
}
