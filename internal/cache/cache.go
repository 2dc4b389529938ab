// Package cache keeps today's patterns in Redis in front of the SQLite store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"astrobot/internal/horoscope"
	"astrobot/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "astrobot:pattern:"

// PatternStore is a read-through cache over another horoscope.PatternStore.
// Redis errors are logged and fall through to the inner store.
type PatternStore struct {
	inner  horoscope.PatternStore
	rdb    redis.Cmdable
	ttl    time.Duration
	logger zerolog.Logger
}

var _ horoscope.PatternStore = (*PatternStore)(nil)

func NewPatternStore(inner horoscope.PatternStore, rdb redis.Cmdable, ttl time.Duration, logger zerolog.Logger) *PatternStore {
	return &PatternStore{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "pattern_cache").Logger(),
	}
}

func patternKey(sign model.Sign, date string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, sign, date)
}

func (s *PatternStore) GetPattern(ctx context.Context, sign model.Sign, date string) (*model.DailyPattern, error) {
	key := patternKey(sign, date)
	var p model.DailyPattern
	if s.readCache(ctx, key, &p) {
		return &p, nil
	}

	found, err := s.inner.GetPattern(ctx, sign, date)
	if err != nil || found == nil {
		return found, err
	}
	s.writeCache(ctx, key, found)
	return found, nil
}

func (s *PatternStore) RecentPatterns(ctx context.Context, sign model.Sign, limit int) ([]model.DailyPattern, error) {
	return s.inner.RecentPatterns(ctx, sign, limit)
}

// SavePattern writes through. The cache is filled with whatever the inner
// store kept, which differs from p when the day was already taken.
func (s *PatternStore) SavePattern(ctx context.Context, p model.DailyPattern, historySize int) (model.DailyPattern, error) {
	stored, err := s.inner.SavePattern(ctx, p, historySize)
	if err != nil {
		return model.DailyPattern{}, err
	}
	s.writeCache(ctx, patternKey(stored.Sign, stored.Date), stored)
	return stored, nil
}

func (s *PatternStore) readCache(ctx context.Context, key string, out any) bool {
	if s.rdb == nil || s.ttl <= 0 {
		return false
	}
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(val, out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		_ = s.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (s *PatternStore) writeCache(ctx context.Context, key string, val any) {
	if s.rdb == nil || s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
