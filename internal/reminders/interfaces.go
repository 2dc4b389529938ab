package reminders

import (
	"context"
	"time"

	"astrobot/internal/model"
)

// UserStore provides the subscribers of the daily horoscope.
type UserStore interface {
	// ListDueUsers returns enabled users with a sign whose reminder time is
	// at and who were not notified on date yet.
	ListDueUsers(ctx context.Context, at model.ClockTime, date string) ([]model.UserProfile, error)

	// MarkNotified records that the user got the reminder of date.
	MarkNotified(ctx context.Context, userID int64, date string) error

	// DisableNotifications turns reminders off for a user.
	DisableNotifications(ctx context.Context, userID int64) error
}

// Horoscopes renders the daily text of a sign.
type Horoscopes interface {
	HoroscopeFor(ctx context.Context, sign model.Sign, lang model.Lang, date time.Time) (string, error)
}

// Notifier delivers text to a user's private chat.
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string) error
}
