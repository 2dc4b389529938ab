package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"astrobot/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotter struct {
	mu    sync.Mutex
	dests []string
	err   error
}

func (f *fakeSnapshotter) Backup(dest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.dests = append(f.dests, dest)
	return os.WriteFile(dest, []byte("snapshot"), 0o644)
}

func (f *fakeSnapshotter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dests)
}

func newService(t *testing.T, snap Snapshotter, cfg config.BackupConfig) *BackupService {
	t.Helper()
	logger := zerolog.Nop()
	s := NewBackupService(snap, cfg, &logger)
	s.now = func() time.Time { return time.Date(2025, time.November, 19, 3, 0, 0, 0, time.UTC) }
	return s
}

func TestPerformBackup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	snap := &fakeSnapshotter{}
	s := newService(t, snap, config.BackupConfig{Enabled: true, Path: dir, IntervalHours: 24, RetentionDays: 7})

	path, err := s.PerformBackup()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "astrobot_20251119_030000.db"), path)
	assert.FileExists(t, path)

	snap.err = errors.New("database is locked")
	_, err = s.PerformBackup()
	assert.ErrorIs(t, err, snap.err)
}

func TestCleanupOldBackups(t *testing.T) {
	dir := t.TempDir()
	s := newService(t, &fakeSnapshotter{}, config.BackupConfig{Enabled: true, Path: dir, IntervalHours: 24, RetentionDays: 7})

	write := func(name string, age time.Duration) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		mt := s.now().Add(-age)
		require.NoError(t, os.Chtimes(p, mt, mt))
		return p
	}

	old := write("astrobot_20251101_030000.db", 18*24*time.Hour)
	recent := write("astrobot_20251118_030000.db", 24*time.Hour)
	foreign := write("notes.txt", 30*24*time.Hour)

	assert.Equal(t, 1, s.CleanupOldBackups())
	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
	assert.FileExists(t, foreign)
}

func TestStart(t *testing.T) {
	t.Run("disabled returns immediately", func(t *testing.T) {
		snap := &fakeSnapshotter{}
		s := newService(t, snap, config.BackupConfig{Enabled: false})
		s.Start(context.Background())
		assert.Zero(t, snap.count())
	})

	t.Run("takes first snapshot after delay", func(t *testing.T) {
		snap := &fakeSnapshotter{}
		s := newService(t, snap, config.BackupConfig{Enabled: true, Path: t.TempDir(), IntervalHours: 24, RetentionDays: 7})
		s.initialDelay = 10 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			s.Start(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool { return snap.count() == 1 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("backup service did not stop")
		}
	})
}
