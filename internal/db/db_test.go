package db

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"astrobot/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	database, err := NewDB(filepath.Join(t.TempDir(), "astro.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestUsers(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	got, err := database.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	p := model.DefaultProfile(42, model.LangRU, model.ClockTime{Hour: 9})
	require.NoError(t, database.EnsureUser(ctx, &p))

	// Second insert does not overwrite.
	again := model.DefaultProfile(42, model.LangES, model.ClockTime{Hour: 7})
	require.NoError(t, database.EnsureUser(ctx, &again))

	got, err = database.GetUser(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.LangRU, got.Lang)
	assert.Equal(t, model.ClockTime{Hour: 9}, got.NotifyTime)
	assert.False(t, got.HasSign())
	assert.False(t, got.NotifyEnabled)

	require.NoError(t, database.SetSign(ctx, 42, model.Leo))
	require.NoError(t, database.SetLang(ctx, 42, model.LangES))
	require.NoError(t, database.SetReminder(ctx, 42, model.ClockTime{Hour: 7, Minute: 30}))

	got, err = database.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.Leo, got.Sign)
	assert.Equal(t, model.LangES, got.Lang)
	assert.True(t, got.NotifyEnabled)
	assert.Equal(t, "07:30", got.NotifyTime.String())

	require.NoError(t, database.DisableNotifications(ctx, 42))
	got, err = database.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.False(t, got.NotifyEnabled)

	assert.ErrorIs(t, database.SetSign(ctx, 7, model.Leo), ErrUserNotFound)
}

func TestListDueUsers(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	nine := model.ClockTime{Hour: 9}

	add := func(id int64, sign model.Sign, enabled bool, at model.ClockTime) {
		p := model.DefaultProfile(id, model.LangEN, at)
		require.NoError(t, database.EnsureUser(ctx, &p))
		if sign != "" {
			require.NoError(t, database.SetSign(ctx, id, sign))
		}
		if enabled {
			require.NoError(t, database.SetReminder(ctx, id, at))
		}
	}
	add(1, model.Leo, true, nine)
	add(2, model.Virgo, true, model.ClockTime{Hour: 9, Minute: 1})
	add(3, "", true, nine)          // no sign
	add(4, model.Aries, false, nine) // disabled
	add(5, model.Pisces, true, nine)

	due, err := database.ListDueUsers(ctx, nine, "2025-11-19")
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, int64(1), due[0].UserID)
	assert.Equal(t, int64(5), due[1].UserID)

	require.NoError(t, database.MarkNotified(ctx, 1, "2025-11-19"))
	due, err = database.ListDueUsers(ctx, nine, "2025-11-19")
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, int64(5), due[0].UserID)

	due, err = database.ListDueUsers(ctx, nine, "2025-11-20")
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestPatterns(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	got, err := database.GetPattern(ctx, model.Leo, "2025-11-19")
	require.NoError(t, err)
	assert.Nil(t, got)

	for day := 1; day <= 8; day++ {
		p := model.DailyPattern{Sign: model.Leo, Date: dateOf(day), Mood: day, Number: day%9 + 1}
		stored, err := database.SavePattern(ctx, p, 5)
		require.NoError(t, err)
		assert.Equal(t, p, stored)
	}
	other := model.DailyPattern{Sign: model.Aries, Date: dateOf(1), Mood: 1, Number: 1}
	_, err = database.SavePattern(ctx, other, 5)
	require.NoError(t, err)

	got, err = database.GetPattern(ctx, model.Leo, dateOf(3))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Mood)

	history, err := database.RecentPatterns(ctx, model.Leo, 100)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, dateOf(8), history[0].Date)
	assert.Equal(t, dateOf(4), history[4].Date)

	// Saving an existing day keeps the first pattern and leaves history alone.
	dup := model.DailyPattern{Sign: model.Leo, Date: dateOf(8), Mood: 0, Number: 9}
	stored, err := database.SavePattern(ctx, dup, 5)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Mood, "conflicting save returns the stored pattern")
	assert.Equal(t, dateOf(8), stored.Date)
	got, err = database.GetPattern(ctx, model.Leo, dateOf(8))
	require.NoError(t, err)
	assert.Equal(t, 8, got.Mood)
	history, err = database.RecentPatterns(ctx, model.Leo, 100)
	require.NoError(t, err)
	assert.Len(t, history, 5)

	aries, err := database.RecentPatterns(ctx, model.Aries, 100)
	require.NoError(t, err)
	assert.Len(t, aries, 1)
}

func dateOf(day int) string {
	return "2025-11-0" + string(rune('0'+day))
}

func TestTarotDraws(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	got, err := database.GetTarotDraw(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, database.SaveTarotDraw(ctx, &model.TarotDraw{UserID: 1, CardID: "sun", DrawnOn: "2025-11-19"}))
	require.NoError(t, database.SaveTarotDraw(ctx, &model.TarotDraw{UserID: 1, CardID: "star", DrawnOn: "2025-11-20"}))

	got, err = database.GetTarotDraw(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "star", got.CardID)
	assert.Equal(t, "2025-11-20", got.DrawnOn)
}

func TestQuotes(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	q := &model.Quote{Date: "2025-11-19", Sign: model.Leo, Text: "Simplify.", Author: "Thoreau", Source: "pool"}
	require.NoError(t, database.SaveQuote(ctx, q))
	require.NoError(t, database.SaveQuote(ctx, &model.Quote{Date: "2025-11-19", Sign: model.Leo, Text: "Other"}))
	require.NoError(t, database.SaveQuote(ctx, &model.Quote{Date: "2025-09-01", Sign: model.Leo, Text: "Old"}))

	got, err := database.GetQuote(ctx, "2025-11-19", model.Leo)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Simplify.", got.Text)
	assert.Equal(t, "Thoreau", got.Author)

	texts, err := database.RecentQuoteTexts(ctx, "2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Simplify."}, texts)
}

func TestStatsAndBackup(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	for id, sign := range map[int64]model.Sign{1: model.Leo, 2: model.Leo, 3: model.Virgo} {
		p := model.DefaultProfile(id, model.LangEN, model.ClockTime{Hour: 9})
		require.NoError(t, database.EnsureUser(ctx, &p))
		require.NoError(t, database.SetSign(ctx, id, sign))
	}
	require.NoError(t, database.SetReminder(ctx, 1, model.ClockTime{Hour: 8}))
	require.NoError(t, database.SaveTarotDraw(ctx, &model.TarotDraw{UserID: 1, CardID: "sun", DrawnOn: "2025-11-19"}))

	stats, err := database.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Users)
	assert.Equal(t, 3, stats.WithSign)
	assert.Equal(t, 1, stats.Subscribed)
	assert.Equal(t, 1, stats.TarotDraws)
	assert.Equal(t, 2, stats.BySign[model.Leo])
	assert.Equal(t, 1, stats.BySign[model.Virgo])

	users, err := database.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	dest := filepath.Join(t.TempDir(), "snap", "backup.db")
	require.NoError(t, database.Backup(dest))
	assert.FileExists(t, dest)
}
