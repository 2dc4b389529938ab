// Package tarot gates each user to one card per draw window.
package tarot

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"astrobot/internal/content"
	"astrobot/internal/locks"
	"astrobot/internal/model"

	"github.com/rs/zerolog"
)

// ErrEmptyCatalog is returned when there is no card to draw.
var ErrEmptyCatalog = errors.New("tarot catalog is empty")

// WeeklyWindowDays is the smallest window rendered with the weekly heading.
const WeeklyWindowDays = 7

// DrawStore persists the last draw of each user.
type DrawStore interface {
	GetTarotDraw(ctx context.Context, userID int64) (*model.TarotDraw, error)
	SaveTarotDraw(ctx context.Context, d *model.TarotDraw) error
}

// Result is what a draw request returns to the chat layer.
type Result struct {
	Text         string
	AlreadyDrawn bool
	CardID       string
	Image        string
}

type Drawer struct {
	store      DrawStore
	content    *content.Store
	locker     locks.Locker
	windowDays int
	loc        *time.Location
	intn       func(n int) int
	logger     zerolog.Logger
}

// NewDrawer builds a drawer with a window of windowDays calendar days in loc.
func NewDrawer(store DrawStore, c *content.Store, locker locks.Locker, windowDays int, loc *time.Location, logger zerolog.Logger) *Drawer {
	if windowDays < 1 {
		windowDays = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Drawer{
		store:      store,
		content:    c,
		locker:     locker,
		windowDays: windowDays,
		loc:        loc,
		intn:       rand.IntN,
		logger:     logger.With().Str("component", "tarot").Logger(),
	}
}

func (d *Drawer) WindowDays() int {
	return d.windowDays
}

// DrawOrRepeat returns the user's card for the current window, drawing a
// new one when there is no record or the window has elapsed.
func (d *Drawer) DrawOrRepeat(ctx context.Context, userID int64, lang model.Lang, now time.Time) (Result, error) {
	cards := d.content.Cards()
	if len(cards) == 0 {
		return Result{}, ErrEmptyCatalog
	}

	unlock, err := d.locker.Lock(ctx, "tarot:"+strconv.FormatInt(userID, 10))
	if err != nil {
		return Result{}, fmt.Errorf("lock tarot %d: %w", userID, err)
	}
	defer unlock()

	today := model.DateKey(now.In(d.loc))

	last, err := d.store.GetTarotDraw(ctx, userID)
	if err != nil {
		d.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to read tarot draw, drawing a new card")
		last = nil
	}

	if last != nil && !d.windowElapsed(last.DrawnOn, today) {
		if card, ok := d.content.Card(last.CardID); ok {
			return d.result(card, lang, true), nil
		}
		d.logger.Warn().Int64("user_id", userID).Str("card_id", last.CardID).Msg("recorded card not in catalog, drawing again")
	}

	card := cards[d.intn(len(cards))]
	rec := &model.TarotDraw{UserID: userID, CardID: card.ID, DrawnOn: today}
	if err := d.store.SaveTarotDraw(ctx, rec); err != nil {
		d.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to save tarot draw")
	}
	return d.result(card, lang, false), nil
}

// windowElapsed reports whether at least windowDays calendar days separate
// drawnOn from today. An unparseable record counts as elapsed.
func (d *Drawer) windowElapsed(drawnOn, today string) bool {
	from, err := time.Parse(time.DateOnly, drawnOn)
	if err != nil {
		return true
	}
	to, err := time.Parse(time.DateOnly, today)
	if err != nil {
		return true
	}
	days := int(to.Sub(from).Hours() / 24)
	return days >= d.windowDays
}

func (d *Drawer) result(card model.TarotCard, lang model.Lang, repeat bool) Result {
	return Result{
		Text:         d.Render(card, lang),
		AlreadyDrawn: repeat,
		CardID:       card.ID,
		Image:        card.Image,
	}
}

// Render formats a card with the heading of the configured window.
func (d *Drawer) Render(card model.TarotCard, lang model.Lang) string {
	heading := content.LabelTarotDaily
	if d.windowDays >= WeeklyWindowDays {
		heading = content.LabelTarotWeekly
	}
	title, keyword, meaning := d.content.CardText(card, lang)

	var b strings.Builder
	fmt.Fprintf(&b, "🃏 %s\n\n", d.content.Label(lang, heading))
	fmt.Fprintf(&b, "%s · %s\n\n", title, keyword)
	b.WriteString(meaning)
	return b.String()
}
