package db

import (
	"context"
	"database/sql"
	"errors"

	"astrobot/internal/model"
)

// GetQuote returns the quote chosen for (date, sign), or nil, nil.
func (db *DB) GetQuote(ctx context.Context, date string, sign model.Sign) (*model.Quote, error) {
	var q model.Quote
	err := db.GetContext(ctx, &q, `
		SELECT date, sign, text, author, source
		FROM quotes
		WHERE date = ? AND sign = ?`, date, sign)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

// RecentQuoteTexts returns the texts of quotes chosen on or after since.
func (db *DB) RecentQuoteTexts(ctx context.Context, since string) ([]string, error) {
	var texts []string
	err := db.SelectContext(ctx, &texts, `SELECT DISTINCT text FROM quotes WHERE date >= ?`, since)
	return texts, err
}

// SaveQuote keeps the first quote stored for a (date, sign).
func (db *DB) SaveQuote(ctx context.Context, q *model.Quote) error {
	_, err := db.NamedExecContext(ctx, `
		INSERT INTO quotes (date, sign, text, author, source)
		VALUES (:date, :sign, :text, :author, :source)
		ON CONFLICT(date, sign) DO NOTHING`, q)
	return err
}
