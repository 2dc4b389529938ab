package locks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

// Redis is a Locker shared by every process using the same Redis database.
// The lock expires after ttl even if the holder dies.
type Redis struct {
	rdb      redis.Cmdable
	prefix   string
	ttl      time.Duration
	retry    time.Duration
	maxTries int
}

func NewRedis(rdb redis.Cmdable, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{
		rdb:      rdb,
		prefix:   "astrobot:lock:",
		ttl:      ttl,
		retry:    50 * time.Millisecond,
		maxTries: 100,
	}
}

func (l *Redis) Lock(ctx context.Context, key string) (func(), error) {
	full := l.prefix + key
	token := uuid.NewString()

	for i := 0; i < l.maxTries; i++ {
		ok, err := l.rdb.SetNX(ctx, full, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// A fresh context so cancellation of the caller still releases.
				ctxUnlock, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = unlockScript.Run(ctxUnlock, l.rdb, []string{full}, token).Err()
			}, nil
		}

		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, ErrLockNotAcquired
}
