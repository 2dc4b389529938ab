package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"astrobot/internal/model"
)

const patternColumns = `sign, date, mood, season, love, work, money, health, advice, color, number`

// GetPattern returns the pattern stored for (sign, date), or nil, nil.
func (db *DB) GetPattern(ctx context.Context, sign model.Sign, date string) (*model.DailyPattern, error) {
	var p model.DailyPattern
	err := db.GetContext(ctx, &p, `
		SELECT `+patternColumns+`
		FROM daily_patterns
		WHERE sign = ? AND date = ?`, sign, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// RecentPatterns returns up to limit history entries for sign, newest first.
func (db *DB) RecentPatterns(ctx context.Context, sign model.Sign, limit int) ([]model.DailyPattern, error) {
	var out []model.DailyPattern
	err := db.SelectContext(ctx, &out, `
		SELECT `+patternColumns+`
		FROM pattern_history
		WHERE sign = ?
		ORDER BY id DESC
		LIMIT ?`, sign, limit)
	return out, err
}

// SavePattern stores p as the pattern of its day, appends it to the sign
// history and trims the history to historySize entries, atomically.
// When the day already has a pattern nothing is written and the stored
// pattern is returned instead of p.
func (db *DB) SavePattern(ctx context.Context, p model.DailyPattern, historySize int) (stored model.DailyPattern, err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return model.DailyPattern{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.NamedExecContext(ctx, `
		INSERT INTO daily_patterns (`+patternColumns+`)
		VALUES (:sign, :date, :mood, :season, :love, :work, :money, :health, :advice, :color, :number)
		ON CONFLICT(sign, date) DO NOTHING`, p)
	if err != nil {
		return model.DailyPattern{}, fmt.Errorf("insert daily pattern: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return model.DailyPattern{}, err
	}
	if inserted == 0 {
		if err = tx.GetContext(ctx, &stored, `
			SELECT `+patternColumns+`
			FROM daily_patterns
			WHERE sign = ? AND date = ?`, p.Sign, p.Date); err != nil {
			return model.DailyPattern{}, fmt.Errorf("read stored daily pattern: %w", err)
		}
		return stored, tx.Commit()
	}

	if _, err = tx.NamedExecContext(ctx, `
		INSERT INTO pattern_history (`+patternColumns+`)
		VALUES (:sign, :date, :mood, :season, :love, :work, :money, :health, :advice, :color, :number)`, p); err != nil {
		return model.DailyPattern{}, fmt.Errorf("append pattern history: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM pattern_history
		WHERE sign = ? AND id NOT IN (
			SELECT id FROM pattern_history WHERE sign = ? ORDER BY id DESC LIMIT ?
		)`, p.Sign, p.Sign, historySize); err != nil {
		return model.DailyPattern{}, fmt.Errorf("trim pattern history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return model.DailyPattern{}, err
	}
	return p, nil
}
