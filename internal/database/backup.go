// Package database runs periodic snapshots of the SQLite store.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"astrobot/internal/config"

	"github.com/rs/zerolog"
)

const (
	backupPrefix = "astrobot_"
	backupSuffix = ".db"
)

// Snapshotter writes a consistent copy of the database to dest.
type Snapshotter interface {
	Backup(dest string) error
}

type BackupService struct {
	db           Snapshotter
	config       config.BackupConfig
	initialDelay time.Duration
	now          func() time.Time
	logger       *zerolog.Logger
}

func NewBackupService(db Snapshotter, cfg config.BackupConfig, logger *zerolog.Logger) *BackupService {
	l := logger.With().Str("component", "backup").Logger()
	return &BackupService{
		db:           db,
		config:       cfg,
		initialDelay: time.Minute,
		now:          time.Now,
		logger:       &l,
	}
}

// Start takes a snapshot shortly after startup and then every interval,
// pruning old snapshots after each one. It returns when ctx is done.
func (s *BackupService) Start(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info().Msg("Backup service is disabled")
		return
	}

	interval := time.Duration(s.config.IntervalHours) * time.Hour
	s.logger.Info().Dur("interval", interval).Str("path", s.config.Path).Msg("Backup service started")

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.initialDelay):
	}
	s.runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *BackupService) runOnce() {
	if _, err := s.PerformBackup(); err != nil {
		s.logger.Error().Err(err).Msg("Scheduled backup failed")
		return
	}
	s.CleanupOldBackups()
}

// PerformBackup writes a timestamped snapshot and returns its path.
func (s *BackupService) PerformBackup() (string, error) {
	if err := os.MkdirAll(s.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := backupPrefix + s.now().Format("20060102_150405") + backupSuffix
	dest := filepath.Join(s.config.Path, name)

	s.logger.Info().Str("path", dest).Msg("Performing database backup")
	if err := s.db.Backup(dest); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", dest, err)
	}
	s.logger.Info().Str("path", dest).Msg("Backup completed successfully")
	return dest, nil
}

// CleanupOldBackups removes snapshots older than the retention window and
// returns how many were deleted. Other files in the directory are left alone.
func (s *BackupService) CleanupOldBackups() int {
	if s.config.RetentionDays <= 0 {
		return 0
	}

	files, err := os.ReadDir(s.config.Path)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read backup directory for cleanup")
		return 0
	}

	cutoff := s.now().AddDate(0, 0, -s.config.RetentionDays)
	deleted := 0

	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", name).Msg("Deleting old backup")
			if err := os.Remove(filepath.Join(s.config.Path, name)); err != nil {
				s.logger.Warn().Err(err).Str("file", name).Msg("Failed to delete old backup")
				continue
			}
			deleted++
		}
	}
	return deleted
}
