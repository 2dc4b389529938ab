package model

import "strings"

// Sign is a zodiac sign code such as "leo".
type Sign string

const (
	Aries       Sign = "aries"
	Taurus      Sign = "taurus"
	Gemini      Sign = "gemini"
	Cancer      Sign = "cancer"
	Leo         Sign = "leo"
	Virgo       Sign = "virgo"
	Libra       Sign = "libra"
	Scorpio     Sign = "scorpio"
	Sagittarius Sign = "sagittarius"
	Capricorn   Sign = "capricorn"
	Aquarius    Sign = "aquarius"
	Pisces      Sign = "pisces"
)

// Signs lists all signs in zodiac order.
var Signs = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Valid reports whether s is one of the twelve known signs.
func (s Sign) Valid() bool {
	for _, known := range Signs {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSign normalizes user input and rejects unknown codes.
func ParseSign(raw string) (Sign, error) {
	s := Sign(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidSign
	}
	return s, nil
}

// Lang is a content language code.
type Lang string

const (
	LangEN Lang = "en"
	LangRU Lang = "ru"
	LangES Lang = "es"
)

// ParseLang normalizes a language code against the allowed set.
// Telegram sends codes like "ru-RU", only the primary subtag is used.
func ParseLang(raw string, allowed []Lang) (Lang, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	for _, l := range allowed {
		if Lang(code) == l {
			return l, nil
		}
	}
	return "", ErrInvalidLang
}
