// Package horoscope picks the daily fragment pattern for a sign and renders
// it as text.
package horoscope

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"astrobot/internal/content"
	"astrobot/internal/locks"
	"astrobot/internal/model"

	"github.com/rs/zerolog"
)

// MaxDayNumber bounds the "number of the day", drawn from 1..MaxDayNumber.
const MaxDayNumber = 9

// PatternStore persists daily patterns and the per-sign history.
type PatternStore interface {
	GetPattern(ctx context.Context, sign model.Sign, date string) (*model.DailyPattern, error)
	// RecentPatterns returns up to limit history entries, newest first.
	RecentPatterns(ctx context.Context, sign model.Sign, limit int) ([]model.DailyPattern, error)
	// SavePattern returns the pattern that ends up stored for (p.Sign, p.Date),
	// which is an earlier one when the day was already taken.
	SavePattern(ctx context.Context, p model.DailyPattern, historySize int) (model.DailyPattern, error)
}

// GeneratorConfig bounds the anti-repeat search.
type GeneratorConfig struct {
	// HistorySize is how many past patterns are kept per sign.
	HistorySize int
	// AntiRepeatWindow is how many of the most recent patterns a new one must differ from.
	AntiRepeatWindow int
	// MaxRetries is how many draws are attempted before accepting a repeat.
	MaxRetries int
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{HistorySize: 60, AntiRepeatWindow: 14, MaxRetries: 10}
}

// Generator returns the single pattern of a (sign, date), drawing it on first use.
type Generator struct {
	store    PatternStore
	content  *content.Store
	locker   locks.Locker
	cfg      GeneratorConfig
	intn     func(n int) int
	onCreate func(model.DailyPattern)
	logger   zerolog.Logger
}

func NewGenerator(store PatternStore, c *content.Store, locker locks.Locker, cfg GeneratorConfig, logger zerolog.Logger) *Generator {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return &Generator{
		store:   store,
		content: c,
		locker:  locker,
		cfg:     cfg,
		intn:    rand.IntN,
		logger:  logger.With().Str("component", "pattern_generator").Logger(),
	}
}

// OnCreate registers a callback invoked after a new pattern is persisted.
func (g *Generator) OnCreate(fn func(model.DailyPattern)) {
	g.onCreate = fn
}

// GetOrCreate returns the pattern of sign for the calendar day of day.
// The day must already be expressed in the reference timezone.
//
// Store failures do not fail the call: an unreadable store counts as empty
// and an unsaved pattern is still returned.
func (g *Generator) GetOrCreate(ctx context.Context, sign model.Sign, day time.Time) (model.DailyPattern, error) {
	if !sign.Valid() {
		return model.DailyPattern{}, model.ErrInvalidSign
	}
	date := model.DateKey(day)

	unlock, err := g.locker.Lock(ctx, "pattern:"+string(sign))
	if err != nil {
		return model.DailyPattern{}, fmt.Errorf("lock pattern %s: %w", sign, err)
	}
	defer unlock()

	existing, err := g.store.GetPattern(ctx, sign, date)
	switch {
	case err != nil:
		g.logger.Warn().Err(err).Str("sign", string(sign)).Str("date", date).
			Msg("failed to read daily pattern, drawing a new one")
	case existing != nil:
		return *existing, nil
	}

	recent, err := g.store.RecentPatterns(ctx, sign, g.cfg.AntiRepeatWindow)
	if err != nil {
		g.logger.Warn().Err(err).Str("sign", string(sign)).Msg("failed to read pattern history, ignoring it")
		recent = nil
	}

	p := g.draw(sign, date, recent)

	stored, err := g.store.SavePattern(ctx, p, g.cfg.HistorySize)
	if err != nil {
		g.logger.Error().Err(err).Str("sign", string(sign)).Str("date", date).Msg("failed to save daily pattern")
		return p, nil
	}
	if !stored.SameDraw(p) {
		g.logger.Warn().Str("sign", string(sign)).Str("date", date).
			Msg("daily pattern already stored, keeping the stored one")
		return stored, nil
	}
	if g.onCreate != nil {
		g.onCreate(p)
	}
	return p, nil
}

func (g *Generator) draw(sign model.Sign, date string, recent []model.DailyPattern) model.DailyPattern {
	var p model.DailyPattern
	for attempt := 1; attempt <= g.cfg.MaxRetries; attempt++ {
		p = g.roll(sign, date)
		if !repeats(p, recent) {
			return p
		}
	}
	g.logger.Debug().Str("sign", string(sign)).Int("attempts", g.cfg.MaxRetries).
		Msg("anti-repeat retries exhausted, keeping last draw")
	return p
}

func (g *Generator) roll(sign model.Sign, date string) model.DailyPattern {
	pick := func(cat content.Category) int {
		n := g.content.PoolSize(cat)
		if n <= 0 {
			return 0
		}
		return g.intn(n)
	}
	return model.DailyPattern{
		Sign:   sign,
		Date:   date,
		Mood:   pick(content.CategoryMood),
		Season: pick(content.CategorySeason),
		Love:   pick(content.CategoryLove),
		Work:   pick(content.CategoryWork),
		Money:  pick(content.CategoryMoney),
		Health: pick(content.CategoryHealth),
		Advice: pick(content.CategoryAdvice),
		Color:  pick(content.CategoryColor),
		Number: g.intn(MaxDayNumber) + 1,
	}
}

func repeats(p model.DailyPattern, recent []model.DailyPattern) bool {
	for _, r := range recent {
		if p.SameDraw(r) {
			return true
		}
	}
	return false
}
