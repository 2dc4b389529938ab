package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"astrobot/internal/model"
)

const userColumns = `user_id, sign, lang, notify_enabled, notify_time, last_notified, created_at, updated_at`

// GetUser returns nil, nil when the user has never been stored.
func (db *DB) GetUser(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := db.GetContext(ctx, &p, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// EnsureUser inserts p unless the user already exists.
func (db *DB) EnsureUser(ctx context.Context, p *model.UserProfile) error {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:user_id, :sign, :lang, :notify_enabled, :notify_time, :last_notified, :created_at, :updated_at)
		ON CONFLICT(user_id) DO NOTHING`, p)
	return err
}

func (db *DB) SetSign(ctx context.Context, userID int64, sign model.Sign) error {
	return db.updateUser(ctx, `UPDATE users SET sign = ?, updated_at = ? WHERE user_id = ?`, sign, time.Now(), userID)
}

func (db *DB) SetLang(ctx context.Context, userID int64, lang model.Lang) error {
	return db.updateUser(ctx, `UPDATE users SET lang = ?, updated_at = ? WHERE user_id = ?`, lang, time.Now(), userID)
}

// SetReminder enables the daily reminder at the given local time.
func (db *DB) SetReminder(ctx context.Context, userID int64, at model.ClockTime) error {
	return db.updateUser(ctx, `
		UPDATE users SET notify_enabled = 1, notify_time = ?, updated_at = ?
		WHERE user_id = ?`, at, time.Now(), userID)
}

func (db *DB) DisableNotifications(ctx context.Context, userID int64) error {
	return db.updateUser(ctx, `UPDATE users SET notify_enabled = 0, updated_at = ? WHERE user_id = ?`, time.Now(), userID)
}

// MarkNotified records the local date of the last reminder delivery.
func (db *DB) MarkNotified(ctx context.Context, userID int64, date string) error {
	return db.updateUser(ctx, `UPDATE users SET last_notified = ? WHERE user_id = ?`, date, userID)
}

// ErrUserNotFound is returned by updates addressing a user that was never stored.
var ErrUserNotFound = errors.New("user not found")

func (db *DB) updateUser(ctx context.Context, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListDueUsers returns users whose reminder is set to at and who were not
// notified on date yet.
func (db *DB) ListDueUsers(ctx context.Context, at model.ClockTime, date string) ([]model.UserProfile, error) {
	var users []model.UserProfile
	err := db.SelectContext(ctx, &users, `
		SELECT `+userColumns+`
		FROM users
		WHERE notify_enabled = 1
		  AND sign <> ''
		  AND notify_time = ?
		  AND last_notified <> ?
		ORDER BY user_id`, at, date)
	return users, err
}

// ListUsers returns every stored profile ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	var users []model.UserProfile
	err := db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	return users, err
}

// Stats is an aggregate view used by managers.
type Stats struct {
	Users       int                `db:"users"`
	WithSign    int                `db:"with_sign"`
	Subscribed  int                `db:"subscribed"`
	TarotDraws  int                `db:"tarot_draws"`
	PatternDays int                `db:"pattern_days"`
	BySign      map[model.Sign]int `db:"-"`
}

func (db *DB) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := db.GetContext(ctx, &s, `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE sign <> '') AS with_sign,
			(SELECT COUNT(*) FROM users WHERE notify_enabled = 1) AS subscribed,
			(SELECT COUNT(*) FROM tarot_draws) AS tarot_draws,
			(SELECT COUNT(*) FROM daily_patterns) AS pattern_days`)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Sign  model.Sign `db:"sign"`
		Count int        `db:"cnt"`
	}
	if err := db.SelectContext(ctx, &rows, `
		SELECT sign, COUNT(*) AS cnt FROM users
		WHERE sign <> ''
		GROUP BY sign`); err != nil {
		return nil, err
	}
	s.BySign = make(map[model.Sign]int, len(rows))
	for _, r := range rows {
		s.BySign[r.Sign] = r.Count
	}
	return &s, nil
}
