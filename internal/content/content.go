// Package content holds the static, language-keyed text the bot renders:
// phrase pools, labels, weekday and sign names, and the tarot catalog.
package content

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"astrobot/internal/model"
)

// Category is a fragment pool of the daily horoscope.
type Category string

const (
	CategoryMood   Category = "mood"
	CategorySeason Category = "season"
	CategoryLove   Category = "love"
	CategoryWork   Category = "work"
	CategoryMoney  Category = "money"
	CategoryHealth Category = "health"
	CategoryAdvice Category = "advice"
	CategoryColor  Category = "color"
)

// Categories lists every pool a pattern draws from.
var Categories = []Category{
	CategoryMood, CategorySeason, CategoryLove, CategoryWork,
	CategoryMoney, CategoryHealth, CategoryAdvice, CategoryColor,
}

// LabelKey names a fixed piece of interface text.
type LabelKey string

const (
	LabelTitle        LabelKey = "title"
	LabelTypeOfDay    LabelKey = "type_of_day"
	LabelSeasonalMood LabelKey = "seasonal_mood"
	LabelLove         LabelKey = "love"
	LabelWork         LabelKey = "work"
	LabelMoney        LabelKey = "money"
	LabelHealth       LabelKey = "health"
	LabelAdvice       LabelKey = "advice"
	LabelNumberOfDay  LabelKey = "number_of_day"
	LabelColorOfDay   LabelKey = "color_of_day"
	LabelTarotDaily   LabelKey = "tarot_daily"
	LabelTarotWeekly  LabelKey = "tarot_weekly"
	LabelQuote        LabelKey = "quote"
)

var labelKeys = []LabelKey{
	LabelTitle, LabelTypeOfDay, LabelSeasonalMood, LabelLove, LabelWork, LabelMoney,
	LabelHealth, LabelAdvice, LabelNumberOfDay, LabelColorOfDay,
	LabelTarotDaily, LabelTarotWeekly, LabelQuote,
}

// UnknownSignEmoji prefixes the name of a sign missing from the catalog.
const UnknownSignEmoji = "⭐"

type poolKey struct {
	cat  Category
	lang model.Lang
}

// Store is read-only after construction and safe for concurrent use.
type Store struct {
	pools    map[poolKey][]string
	labels   map[model.Lang]map[LabelKey]string
	weekdays map[model.Lang][7]string
	signs    map[model.Sign]signMeta
	cards    []model.TarotCard
	cardIdx  map[string]int
	fallback model.Lang
}

// New builds the store from the built-in tables. Lookups for a language the
// store does not carry resolve to fallback.
func New(fallback model.Lang) *Store {
	s := &Store{
		pools:    make(map[poolKey][]string),
		labels:   builtinLabels,
		weekdays: builtinWeekdays,
		signs:    builtinSigns,
		cards:    builtinCards,
		cardIdx:  make(map[string]int, len(builtinCards)),
		fallback: fallback,
	}
	for lang, cats := range builtinPools {
		for cat, phrases := range cats {
			s.pools[poolKey{cat, lang}] = phrases
		}
	}
	for i, c := range s.cards {
		s.cardIdx[c.ID] = i
	}
	return s
}

// Validate checks that every language in langs carries complete content and
// that each category has the same pool length in all of them. Patterns are
// shared across languages, so a length mismatch would render different
// phrases for the same day.
func (s *Store) Validate(langs []model.Lang) error {
	if len(langs) == 0 {
		return errors.New("content: no languages configured")
	}
	var errs []error

	for _, cat := range Categories {
		want := -1
		for _, lang := range langs {
			n := len(s.pools[poolKey{cat, lang}])
			if n == 0 {
				errs = append(errs, fmt.Errorf("content: pool %s/%s is empty", cat, lang))
				continue
			}
			if want < 0 {
				want = n
			} else if n != want {
				errs = append(errs, fmt.Errorf("content: pool %s/%s has %d entries, expected %d", cat, lang, n, want))
			}
		}
	}

	for _, lang := range langs {
		for _, key := range labelKeys {
			if s.labels[lang][key] == "" {
				errs = append(errs, fmt.Errorf("content: label %s/%s is missing", key, lang))
			}
		}
		wd, ok := s.weekdays[lang]
		if !ok {
			errs = append(errs, fmt.Errorf("content: weekdays for %s are missing", lang))
		}
		for i, name := range wd {
			if ok && name == "" {
				errs = append(errs, fmt.Errorf("content: weekday %d for %s is empty", i, lang))
			}
		}
		for _, sign := range model.Signs {
			if s.signs[sign].names[lang] == "" {
				errs = append(errs, fmt.Errorf("content: sign %s has no %s name", sign, lang))
			}
		}
		for _, c := range s.cards {
			if c.Title[lang] == "" || c.Keyword[lang] == "" || c.Meaning[lang] == "" {
				errs = append(errs, fmt.Errorf("content: tarot card %s lacks %s text", c.ID, lang))
			}
		}
	}

	if len(s.cards) == 0 {
		errs = append(errs, errors.New("content: tarot catalog is empty"))
	}

	return errors.Join(errs...)
}

// Resolve maps lang to a language the store carries.
func (s *Store) Resolve(lang model.Lang) model.Lang {
	if _, ok := s.labels[lang]; ok {
		return lang
	}
	return s.fallback
}

// PoolSize returns the number of phrases in a category.
func (s *Store) PoolSize(cat Category) int {
	return len(s.pools[poolKey{cat, s.fallback}])
}

// Phrase returns entry idx of a category pool. Out-of-range indices wrap
// around, which only happens if stored patterns predate a content change.
func (s *Store) Phrase(cat Category, lang model.Lang, idx int) string {
	pool := s.pools[poolKey{cat, s.Resolve(lang)}]
	if len(pool) == 0 {
		return ""
	}
	idx %= len(pool)
	if idx < 0 {
		idx += len(pool)
	}
	return pool[idx]
}

func (s *Store) Label(lang model.Lang, key LabelKey) string {
	return s.labels[s.Resolve(lang)][key]
}

func (s *Store) Weekday(lang model.Lang, wd time.Weekday) string {
	// time.Weekday starts on Sunday.
	return s.weekdays[s.Resolve(lang)][(int(wd)+6)%7]
}

// SignMeta returns the emoji and localized name of a sign.
func (s *Store) SignMeta(sign model.Sign, lang model.Lang) (emoji, name string) {
	meta, ok := s.signs[sign]
	if !ok {
		code := string(sign)
		if code == "" {
			return UnknownSignEmoji, ""
		}
		return UnknownSignEmoji, strings.ToUpper(code[:1]) + code[1:]
	}
	name = meta.names[s.Resolve(lang)]
	if name == "" {
		name = meta.names[model.LangEN]
	}
	return meta.emoji, name
}

// Cards returns the tarot catalog in a stable order.
func (s *Store) Cards() []model.TarotCard {
	return s.cards
}

func (s *Store) Card(id string) (model.TarotCard, bool) {
	i, ok := s.cardIdx[id]
	if !ok {
		return model.TarotCard{}, false
	}
	return s.cards[i], true
}

// CardText returns the localized title, keyword and meaning of a card.
func (s *Store) CardText(c model.TarotCard, lang model.Lang) (title, keyword, meaning string) {
	lang = s.Resolve(lang)
	return c.Title[lang], c.Keyword[lang], c.Meaning[lang]
}
