// Package quotes picks one quote per (date, sign) and avoids reusing a quote
// within a trailing window of days.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"astrobot/internal/content"
	"astrobot/internal/locks"
	"astrobot/internal/model"
	"astrobot/internal/textgen"

	"github.com/rs/zerolog"
)

const (
	SourceAI   = "ai"
	SourcePool = "pool"
)

// Store persists chosen quotes.
type Store interface {
	GetQuote(ctx context.Context, date string, sign model.Sign) (*model.Quote, error)
	RecentQuoteTexts(ctx context.Context, since string) ([]string, error)
	SaveQuote(ctx context.Context, q *model.Quote) error
}

type Service struct {
	store        Store
	source       textgen.Source
	content      *content.Store
	locker       locks.Locker
	noRepeatDays int
	logger       zerolog.Logger
}

func NewService(store Store, source textgen.Source, c *content.Store, locker locks.Locker, noRepeatDays int, logger zerolog.Logger) *Service {
	if source == nil {
		source = textgen.Disabled{}
	}
	return &Service{
		store:        store,
		source:       source,
		content:      c,
		locker:       locker,
		noRepeatDays: noRepeatDays,
		logger:       logger.With().Str("component", "quotes").Logger(),
	}
}

// Get returns the quote of day for sign, localized to lang. An empty sign
// selects the shared quote for users without a sign.
func (s *Service) Get(ctx context.Context, sign model.Sign, lang model.Lang, day time.Time) (model.Quote, error) {
	date := model.DateKey(day)

	unlock, err := s.locker.Lock(ctx, "quote:"+date+":"+string(sign))
	if err != nil {
		return model.Quote{}, fmt.Errorf("lock quote: %w", err)
	}
	defer unlock()

	cached, err := s.store.GetQuote(ctx, date, sign)
	if err != nil {
		s.logger.Warn().Err(err).Str("date", date).Msg("failed to read stored quote")
	} else if cached != nil {
		return s.localize(*cached, lang), nil
	}

	used := make(map[string]struct{})
	since := model.DateKey(day.AddDate(0, 0, -s.noRepeatDays))
	texts, err := s.store.RecentQuoteTexts(ctx, since)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read recent quotes, repeats are possible")
	}
	for _, t := range texts {
		used[t] = struct{}{}
	}

	q, ok := s.fromSource(ctx, sign, lang, day, used)
	if !ok {
		q = pickFallback(date, sign, used)
	}
	q.Date = date
	q.Sign = sign

	if err := s.store.SaveQuote(ctx, &q); err != nil {
		s.logger.Error().Err(err).Str("date", date).Msg("failed to save quote")
	}
	return s.localize(q, lang), nil
}

func (s *Service) fromSource(ctx context.Context, sign model.Sign, lang model.Lang, day time.Time, used map[string]struct{}) (model.Quote, bool) {
	reply, err := s.source.Generate(ctx, s.prompt(sign, lang, day))
	if err != nil {
		if !errors.Is(err, textgen.ErrSourceDisabled) {
			s.logger.Warn().Err(err).Str("source", s.source.Name()).Msg("text source failed, using fallback pool")
		}
		return model.Quote{}, false
	}
	text, author := ParseReply(reply)
	if text == "" {
		return model.Quote{}, false
	}
	if _, seen := used[text]; seen {
		s.logger.Debug().Msg("generated quote was used recently, using fallback pool")
		return model.Quote{}, false
	}
	return model.Quote{Text: text, Author: author, Source: SourceAI}, true
}

var languageNames = map[model.Lang]string{
	model.LangEN: "English",
	model.LangRU: "Russian",
	model.LangES: "Spanish",
}

func (s *Service) prompt(sign model.Sign, lang model.Lang, day time.Time) textgen.Prompt {
	lang = s.content.Resolve(lang)
	_, signName := s.content.SignMeta(sign, lang)
	if sign == "" {
		signName = "any"
	}
	return textgen.Prompt{
		System: fmt.Sprintf("You curate quotes. Write in %s. Invent one concise motivating quote "+
			"for reflection during the day, without emoji and without well-known catchphrases.", languageNames[lang]),
		User: fmt.Sprintf("Sign: %s. Date: %s. Style: smart, not pompous, 8 to 18 words, no quotation marks. "+
			"Reply strictly as: TEXT — AUTHOR. The author may be a short invented name.", signName, day.Format("02.01.2006")),
		MaxTokens: 60,
	}
}

// ParseReply splits a generated reply into quote text and author. Only the
// first line is used; a line without a separator is all text.
func ParseReply(reply string) (text, author string) {
	line := strings.TrimSpace(reply)
	if i := strings.Index(line, "\n"); i >= 0 {
		line = line[:i]
	}
	for _, sep := range []string{"—", " - "} {
		if i := strings.LastIndex(line, sep); i > 0 {
			text, author = line[:i], line[i+len(sep):]
			break
		}
	}
	if text == "" {
		text = line
	}
	return strings.Trim(text, " «»\"'“”"), strings.TrimSpace(author)
}

// pickFallback returns the first unused entry of the pool shuffled with a
// seed of (date, sign), or the first shuffled entry when all are used.
func pickFallback(date string, sign model.Sign, used map[string]struct{}) model.Quote {
	order := shuffledPool(date, sign)
	chosen := order[0]
	for _, p := range order {
		if _, seen := used[p.id]; !seen {
			chosen = p
			break
		}
	}
	return model.Quote{Text: chosen.id, Source: SourcePool}
}

func shuffledPool(date string, sign model.Sign) []poolQuote {
	key := string(sign)
	if key == "" {
		key = "ALL"
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte("quotes|" + date + "|" + key))
	seed := h.Sum64()

	order := make([]poolQuote, len(fallbackPool))
	copy(order, fallbackPool)
	r := rand.New(rand.NewPCG(seed, seed>>1))
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// localize resolves pool quotes, which are stored by id.
func (s *Service) localize(q model.Quote, lang model.Lang) model.Quote {
	if q.Source != SourcePool {
		return q
	}
	lang = s.content.Resolve(lang)
	for _, p := range fallbackPool {
		if p.id == q.Text {
			q.Text = p.text[lang]
			q.Author = p.author[lang]
			return q
		}
	}
	return q
}

// Format renders a localized quote with its heading.
func (s *Service) Format(q model.Quote, lang model.Lang) string {
	heading := s.content.Label(lang, content.LabelQuote)
	if q.Author == "" {
		return fmt.Sprintf("📜 %s: %s", heading, q.Text)
	}
	return fmt.Sprintf("📜 %s: %s — %s", heading, q.Text, q.Author)
}
