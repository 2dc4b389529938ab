package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a local time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses "H:MM" or "HH:MM".
func ParseClock(raw string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || !digits(parts[0], 1, 2) || !digits(parts[1], 2, 2) {
		return ClockTime{}, ErrInvalidTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ClockTime{}, ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ClockTime{}, ErrInvalidTime
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// digits reports whether s is lo..hi ASCII digits.
func digits(s string, lo, hi int) bool {
	if len(s) < lo || len(s) > hi {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Scan implements sql.Scanner.
func (c *ClockTime) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*c = ClockTime{}
		return nil
	default:
		return fmt.Errorf("clock time: unsupported type %T", src)
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return fmt.Errorf("clock time %q: %w", s, err)
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer.
func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

// UserProfile holds per-user preferences.
type UserProfile struct {
	UserID        int64     `db:"user_id" json:"user_id"`
	Sign          Sign      `db:"sign" json:"sign"`
	Lang          Lang      `db:"lang" json:"lang"`
	NotifyEnabled bool      `db:"notify_enabled" json:"notify_enabled"`
	NotifyTime    ClockTime `db:"notify_time" json:"notify_time"`
	LastNotified  string    `db:"last_notified" json:"last_notified,omitempty"` // YYYY-MM-DD, local
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// HasSign reports whether the user has picked a sign.
func (p *UserProfile) HasSign() bool {
	return p.Sign != ""
}

// DefaultProfile returns the profile synthesized for a user seen for the first time.
func DefaultProfile(userID int64, lang Lang, notifyAt ClockTime) UserProfile {
	return UserProfile{
		UserID:     userID,
		Lang:       lang,
		NotifyTime: notifyAt,
	}
}

// DateKey formats t as the YYYY-MM-DD key used for daily records.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
