package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// DB is the SQLite-backed store for profiles, patterns, tarot draws and quotes.
type DB struct {
	*sqlx.DB
	logger *zerolog.Logger
}

// NewDB opens the database at path and applies the schema.
func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	conn, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	instance := &DB{DB: conn, logger: logger}
	if err := instance.createTables(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("Database initialized")
	return instance, nil
}

func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			sign TEXT NOT NULL DEFAULT '',
			lang TEXT NOT NULL DEFAULT 'en',
			notify_enabled BOOLEAN NOT NULL DEFAULT 0,
			notify_time TEXT NOT NULL DEFAULT '09:00',
			last_notified TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_notify ON users(notify_enabled, notify_time)`,
		`CREATE TABLE IF NOT EXISTS daily_patterns (
			sign TEXT NOT NULL,
			date TEXT NOT NULL,
			mood INTEGER NOT NULL,
			season INTEGER NOT NULL,
			love INTEGER NOT NULL,
			work INTEGER NOT NULL,
			money INTEGER NOT NULL,
			health INTEGER NOT NULL,
			advice INTEGER NOT NULL,
			color INTEGER NOT NULL,
			number INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (sign, date)
		)`,
		`CREATE TABLE IF NOT EXISTS pattern_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sign TEXT NOT NULL,
			date TEXT NOT NULL,
			mood INTEGER NOT NULL,
			season INTEGER NOT NULL,
			love INTEGER NOT NULL,
			work INTEGER NOT NULL,
			money INTEGER NOT NULL,
			health INTEGER NOT NULL,
			advice INTEGER NOT NULL,
			color INTEGER NOT NULL,
			number INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pattern_history_sign ON pattern_history(sign, id)`,
		`CREATE TABLE IF NOT EXISTS tarot_draws (
			user_id INTEGER PRIMARY KEY,
			card_id TEXT NOT NULL,
			drawn_on TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS quotes (
			date TEXT NOT NULL,
			sign TEXT NOT NULL,
			text TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT 'pool',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (date, sign)
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%w: %s", err, firstLine(q))
		}
	}
	return nil
}

func firstLine(q string) string {
	if i := strings.IndexByte(q, '\n'); i > 0 {
		return q[:i]
	}
	return q
}

// Backup writes a consistent snapshot of the database to dest.
func (db *DB) Backup(dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	_, err := db.ExecContext(context.Background(), `VACUUM INTO ?`, dest)
	return err
}
