// Package locks serializes read-modify-write sequences per key.
package locks

import (
	"context"
	"errors"
	"sync"
)

// ErrLockNotAcquired is returned when a lock stays contended past the wait budget.
var ErrLockNotAcquired = errors.New("lock not acquired")

// Locker acquires an exclusive lock for key. The returned func releases it
// and must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type keyedEntry struct {
	ch   chan struct{}
	refs int
}

// Keyed is an in-process Locker with one mutex per key. Entries are dropped
// once nobody holds or waits for them.
type Keyed struct {
	mu sync.Mutex
	m  map[string]*keyedEntry
}

func NewKeyed() *Keyed {
	return &Keyed{m: make(map[string]*keyedEntry)}
}

func (k *Keyed) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	e := k.m[key]
	if e == nil {
		e = &keyedEntry{ch: make(chan struct{}, 1)}
		k.m[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			k.release(key, e)
		})
	}, nil
}

func (k *Keyed) release(key string, e *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.m, key)
	}
}

// size reports the number of live keys.
func (k *Keyed) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.m)
}
