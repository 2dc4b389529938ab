package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"astrobot/internal/model"
)

// GetTarotDraw returns the last draw of a user, or nil, nil.
func (db *DB) GetTarotDraw(ctx context.Context, userID int64) (*model.TarotDraw, error) {
	var d model.TarotDraw
	err := db.GetContext(ctx, &d, `
		SELECT user_id, card_id, drawn_on, created_at
		FROM tarot_draws
		WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// SaveTarotDraw replaces the user's last draw.
func (db *DB) SaveTarotDraw(ctx context.Context, d *model.TarotDraw) error {
	d.CreatedAt = time.Now()
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO tarot_draws (user_id, card_id, drawn_on, created_at)
		VALUES (:user_id, :card_id, :drawn_on, :created_at)
		ON CONFLICT(user_id) DO UPDATE SET
			card_id = excluded.card_id,
			drawn_on = excluded.drawn_on,
			created_at = excluded.created_at`, d)
	return err
}
