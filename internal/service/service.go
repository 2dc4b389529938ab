// Package service is the API the chat interface calls: profile changes,
// horoscopes, tarot draws and quotes.
package service

import (
	"context"
	"fmt"
	"time"

	"astrobot/internal/db"
	"astrobot/internal/events"
	"astrobot/internal/model"
	"astrobot/internal/tarot"

	"github.com/rs/zerolog"
)

// UserStore persists profiles. Updates address a single column each.
type UserStore interface {
	GetUser(ctx context.Context, userID int64) (*model.UserProfile, error)
	EnsureUser(ctx context.Context, p *model.UserProfile) error
	SetSign(ctx context.Context, userID int64, sign model.Sign) error
	SetLang(ctx context.Context, userID int64, lang model.Lang) error
	SetReminder(ctx context.Context, userID int64, at model.ClockTime) error
	DisableNotifications(ctx context.Context, userID int64) error
	Stats(ctx context.Context) (*db.Stats, error)
}

// Patterns returns the pattern of a (sign, day).
type Patterns interface {
	GetOrCreate(ctx context.Context, sign model.Sign, day time.Time) (model.DailyPattern, error)
}

// Renderer formats a pattern.
type Renderer interface {
	Render(sign model.Sign, lang model.Lang, date time.Time, p model.DailyPattern) string
}

// TarotDrawer gates tarot draws.
type TarotDrawer interface {
	DrawOrRepeat(ctx context.Context, userID int64, lang model.Lang, now time.Time) (tarot.Result, error)
}

// Quotes picks the quote of the day.
type Quotes interface {
	Get(ctx context.Context, sign model.Sign, lang model.Lang, day time.Time) (model.Quote, error)
	Format(q model.Quote, lang model.Lang) string
}

// Options are the deployment settings the service applies.
type Options struct {
	Location          *time.Location
	Languages         []model.Lang
	DefaultLang       model.Lang
	DefaultNotifyTime model.ClockTime
}

type Service struct {
	users    UserStore
	patterns Patterns
	renderer Renderer
	drawer   TarotDrawer
	quotes   Quotes
	bus      *events.EventBus
	opts     Options
	now      func() time.Time
	logger   zerolog.Logger
}

func New(
	users UserStore,
	patterns Patterns,
	renderer Renderer,
	drawer TarotDrawer,
	quotes Quotes,
	bus *events.EventBus,
	opts Options,
	logger zerolog.Logger,
) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.DefaultLang == "" {
		opts.DefaultLang = model.LangEN
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []model.Lang{opts.DefaultLang}
	}
	return &Service{
		users:    users,
		patterns: patterns,
		renderer: renderer,
		drawer:   drawer,
		quotes:   quotes,
		bus:      bus,
		opts:     opts,
		now:      time.Now,
		logger:   logger.With().Str("component", "service").Logger(),
	}
}

// Languages returns the configured language set.
func (s *Service) Languages() []model.Lang {
	return s.opts.Languages
}

// Today returns the current time in the reference timezone.
func (s *Service) Today() time.Time {
	return s.now().In(s.opts.Location)
}

func (s *Service) defaultProfile(userID int64, lang model.Lang) model.UserProfile {
	if lang == "" {
		lang = s.opts.DefaultLang
	}
	return model.DefaultProfile(userID, lang, s.opts.DefaultNotifyTime)
}

// EnsureUser returns the user's profile, creating it on first contact.
// langHint is the client's language code; it seeds the profile language when
// it is one of the configured languages.
func (s *Service) EnsureUser(ctx context.Context, userID int64, langHint string) (model.UserProfile, error) {
	existing, err := s.users.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to read profile, using defaults")
		return s.defaultProfile(userID, s.hintLang(langHint)), nil
	}
	if existing != nil {
		return *existing, nil
	}

	p := s.defaultProfile(userID, s.hintLang(langHint))
	if err := s.users.EnsureUser(ctx, &p); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create profile")
		return p, nil
	}
	s.publish(events.TypeUserCreated, userID, map[string]string{"lang": string(p.Lang)})
	return p, nil
}

func (s *Service) hintLang(hint string) model.Lang {
	if hint == "" {
		return ""
	}
	lang, err := model.ParseLang(hint, s.opts.Languages)
	if err != nil {
		return ""
	}
	return lang
}

// Profile returns the stored profile, or the default one when it is missing
// or unreadable.
func (s *Service) Profile(ctx context.Context, userID int64) (model.UserProfile, error) {
	p, err := s.users.GetUser(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to read profile, using defaults")
		return s.defaultProfile(userID, ""), nil
	}
	if p == nil {
		return s.defaultProfile(userID, ""), nil
	}
	return *p, nil
}

// ensure makes sure a row exists so single-column updates have a target.
func (s *Service) ensure(ctx context.Context, userID int64) error {
	p := s.defaultProfile(userID, "")
	if err := s.users.EnsureUser(ctx, &p); err != nil {
		return fmt.Errorf("ensure user %d: %w", userID, err)
	}
	return nil
}

func (s *Service) SelectSign(ctx context.Context, userID int64, raw string) (model.Sign, error) {
	sign, err := model.ParseSign(raw)
	if err != nil {
		return "", err
	}
	if err := s.ensure(ctx, userID); err != nil {
		return "", err
	}
	if err := s.users.SetSign(ctx, userID, sign); err != nil {
		return "", fmt.Errorf("set sign: %w", err)
	}
	s.publish(events.TypeSignSelected, userID, map[string]string{"sign": string(sign)})
	return sign, nil
}

func (s *Service) SetLanguage(ctx context.Context, userID int64, raw string) (model.Lang, error) {
	lang, err := model.ParseLang(raw, s.opts.Languages)
	if err != nil {
		return "", err
	}
	if err := s.ensure(ctx, userID); err != nil {
		return "", err
	}
	if err := s.users.SetLang(ctx, userID, lang); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	s.publish(events.TypeLangChanged, userID, map[string]string{"lang": string(lang)})
	return lang, nil
}

// SetReminder enables the daily reminder at raw ("HH:MM", reference timezone).
func (s *Service) SetReminder(ctx context.Context, userID int64, raw string) (model.ClockTime, error) {
	at, err := model.ParseClock(raw)
	if err != nil {
		return model.ClockTime{}, err
	}
	if err := s.ensure(ctx, userID); err != nil {
		return model.ClockTime{}, err
	}
	if err := s.users.SetReminder(ctx, userID, at); err != nil {
		return model.ClockTime{}, fmt.Errorf("set reminder: %w", err)
	}
	s.publish(events.TypeReminderChanged, userID, map[string]string{"enabled": "true", "time": at.String()})
	return at, nil
}

func (s *Service) DisableReminder(ctx context.Context, userID int64) error {
	if err := s.ensure(ctx, userID); err != nil {
		return err
	}
	if err := s.users.DisableNotifications(ctx, userID); err != nil {
		return fmt.Errorf("disable reminder: %w", err)
	}
	s.publish(events.TypeReminderChanged, userID, map[string]string{"enabled": "false"})
	return nil
}

// GetHoroscope renders today's horoscope for the user's sign and language.
func (s *Service) GetHoroscope(ctx context.Context, userID int64) (string, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return "", err
	}
	if !p.HasSign() {
		return "", model.ErrSignNotSelected
	}
	return s.HoroscopeFor(ctx, p.Sign, p.Lang, s.Today())
}

// HoroscopeFor renders the horoscope of sign for the calendar day of date in
// the reference timezone.
func (s *Service) HoroscopeFor(ctx context.Context, sign model.Sign, lang model.Lang, date time.Time) (string, error) {
	local := date.In(s.opts.Location)
	pattern, err := s.patterns.GetOrCreate(ctx, sign, local)
	if err != nil {
		return "", err
	}
	return s.renderer.Render(sign, lang, local, pattern), nil
}

func (s *Service) DrawTarot(ctx context.Context, userID int64) (tarot.Result, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return tarot.Result{}, err
	}
	res, err := s.drawer.DrawOrRepeat(ctx, userID, p.Lang, s.now())
	if err != nil {
		return tarot.Result{}, err
	}
	if !res.AlreadyDrawn {
		s.publish(events.TypeTarotDrawn, userID, map[string]string{"card": res.CardID})
	}
	return res, nil
}

// DailyQuote returns today's formatted quote for the user's sign.
func (s *Service) DailyQuote(ctx context.Context, userID int64) (string, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return "", err
	}
	q, err := s.quotes.Get(ctx, p.Sign, p.Lang, s.Today())
	if err != nil {
		return "", err
	}
	return s.quotes.Format(q, p.Lang), nil
}

func (s *Service) Stats(ctx context.Context) (*db.Stats, error) {
	return s.users.Stats(ctx)
}

// PatternCreated publishes a newly drawn daily pattern.
func (s *Service) PatternCreated(p model.DailyPattern) {
	s.publish(events.TypePatternCreated, 0, map[string]string{"sign": string(p.Sign), "date": p.Date})
}

func (s *Service) publish(eventType string, userID int64, attrs map[string]string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, UserID: userID, Attrs: attrs})
}
