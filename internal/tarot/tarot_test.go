package tarot

import (
	"context"
	"errors"
	"testing"
	"time"

	"astrobot/internal/content"
	"astrobot/internal/locks"
	"astrobot/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetTarotDraw(ctx context.Context, userID int64) (*model.TarotDraw, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*model.TarotDraw)
	return d, args.Error(1)
}

func (m *mockStore) SaveTarotDraw(ctx context.Context, d *model.TarotDraw) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type memStore struct {
	draws map[int64]model.TarotDraw
	saves int
}

func (m *memStore) GetTarotDraw(_ context.Context, userID int64) (*model.TarotDraw, error) {
	d, ok := m.draws[userID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memStore) SaveTarotDraw(_ context.Context, d *model.TarotDraw) error {
	m.saves++
	m.draws[d.UserID] = *d
	return nil
}

var madrid = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(day, hour int) time.Time {
	return time.Date(2025, time.November, day, hour, 0, 0, 0, madrid)
}

func newDrawer(store DrawStore, window int) *Drawer {
	return NewDrawer(store, content.New(model.LangEN), locks.NewKeyed(), window, madrid, zerolog.Nop())
}

func TestDrawOrRepeatLifecycle(t *testing.T) {
	tests := []struct {
		name       string
		window     int
		repeatAt   time.Time
		freshAt    time.Time
		wantHeader string
	}{
		{
			name:       "daily window",
			window:     1,
			repeatAt:   at(10, 23),
			freshAt:    at(11, 0),
			wantHeader: "🃏 Daily tarot card",
		},
		{
			name:       "weekly window",
			window:     7,
			repeatAt:   at(16, 23),
			freshAt:    at(17, 8),
			wantHeader: "🃏 Weekly tarot card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{draws: make(map[int64]model.TarotDraw)}
			d := newDrawer(store, tt.window)
			next := 0
			d.intn = func(n int) int {
				i := next % n
				next++
				return i
			}
			ctx := context.Background()

			first, err := d.DrawOrRepeat(ctx, 7, model.LangEN, at(10, 9))
			require.NoError(t, err)
			assert.False(t, first.AlreadyDrawn)
			assert.Equal(t, "fool", first.CardID)
			assert.Equal(t, "tarot/fool.jpg", first.Image)
			assert.Contains(t, first.Text, tt.wantHeader)
			assert.Equal(t, "2025-11-10", store.draws[7].DrawnOn)

			again, err := d.DrawOrRepeat(ctx, 7, model.LangEN, tt.repeatAt)
			require.NoError(t, err)
			assert.True(t, again.AlreadyDrawn)
			assert.Equal(t, first.CardID, again.CardID)
			assert.Equal(t, first.Text, again.Text)
			assert.Equal(t, 1, store.saves)

			fresh, err := d.DrawOrRepeat(ctx, 7, model.LangEN, tt.freshAt)
			require.NoError(t, err)
			assert.False(t, fresh.AlreadyDrawn)
			assert.Equal(t, "magician", fresh.CardID)
			assert.Equal(t, 2, store.saves)
		})
	}
}

func TestDrawOrRepeatUsesReferenceTimezone(t *testing.T) {
	store := &memStore{draws: make(map[int64]model.TarotDraw)}
	d := newDrawer(store, 1)
	ctx := context.Background()

	// 23:30 UTC on the 10th is already the 11th in Madrid.
	_, err := d.DrawOrRepeat(ctx, 1, model.LangEN, time.Date(2025, time.November, 10, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-11-11", store.draws[1].DrawnOn)
}

func TestDrawOrRepeatLocalizesRepeat(t *testing.T) {
	store := &memStore{draws: map[int64]model.TarotDraw{
		5: {UserID: 5, CardID: "star", DrawnOn: "2025-11-10"},
	}}
	d := newDrawer(store, 1)

	res, err := d.DrawOrRepeat(context.Background(), 5, model.LangRU, at(10, 20))
	require.NoError(t, err)
	assert.True(t, res.AlreadyDrawn)
	assert.Equal(t, "star", res.CardID)
	assert.Contains(t, res.Text, "Карта Таро дня")
	assert.Equal(t, 0, store.saves)
}

func TestDrawOrRepeatStoreFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("read failure draws a new card", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetTarotDraw", mock.Anything, int64(9)).Return(nil, errors.New("locked")).Once()
		store.On("SaveTarotDraw", mock.Anything, mock.MatchedBy(func(d *model.TarotDraw) bool {
			return d.UserID == 9 && d.DrawnOn == "2025-11-10"
		})).Return(nil).Once()

		d := newDrawer(store, 1)

		res, err := d.DrawOrRepeat(ctx, 9, model.LangEN, at(10, 12))
		require.NoError(t, err)
		assert.False(t, res.AlreadyDrawn)
		store.AssertExpectations(t)
	})

	t.Run("save failure still returns the card", func(t *testing.T) {
		store := new(mockStore)
		store.On("GetTarotDraw", mock.Anything, int64(9)).Return(nil, nil).Once()
		store.On("SaveTarotDraw", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		d := newDrawer(store, 1)
		res, err := d.DrawOrRepeat(ctx, 9, model.LangEN, at(10, 12))
		require.NoError(t, err)
		assert.NotEmpty(t, res.CardID)
		store.AssertExpectations(t)
	})

	t.Run("unknown recorded card is replaced", func(t *testing.T) {
		store := &memStore{draws: map[int64]model.TarotDraw{
			3: {UserID: 3, CardID: "retired_card", DrawnOn: "2025-11-10"},
		}}
		d := newDrawer(store, 1)

		res, err := d.DrawOrRepeat(ctx, 3, model.LangEN, at(10, 12))
		require.NoError(t, err)
		assert.False(t, res.AlreadyDrawn)
		assert.NotEqual(t, "retired_card", res.CardID)
	})
}

func TestWindowElapsed(t *testing.T) {
	d := newDrawer(&memStore{}, 7)

	assert.False(t, d.windowElapsed("2025-11-10", "2025-11-16"))
	assert.True(t, d.windowElapsed("2025-11-10", "2025-11-17"))
	assert.True(t, d.windowElapsed("garbage", "2025-11-17"))
	// DST change in late October does not shorten the window.
	assert.True(t, d.windowElapsed("2025-10-20", "2025-10-27"))
}
