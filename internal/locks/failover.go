package locks

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Failover takes locks from primary and switches to fallback when primary
// fails for reasons other than contention or cancellation.
type Failover struct {
	primary  Locker
	fallback Locker
	logger   *zerolog.Logger
}

func NewFailover(primary, fallback Locker, logger *zerolog.Logger) *Failover {
	return &Failover{primary: primary, fallback: fallback, logger: logger}
}

func (f *Failover) Lock(ctx context.Context, key string) (func(), error) {
	unlock, err := f.primary.Lock(ctx, key)
	if err == nil {
		return unlock, nil
	}
	if errors.Is(err, ErrLockNotAcquired) || ctx.Err() != nil {
		return nil, err
	}

	f.logger.Warn().Err(err).Str("key", key).Msg("primary locker failed, using fallback")
	return f.fallback.Lock(ctx, key)
}
