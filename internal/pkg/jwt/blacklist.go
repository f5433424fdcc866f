package jwt

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist stores revoked token keys until they expire.
type Blacklist interface {
	Add(ctx context.Context, key string, ttl time.Duration) error
	Contains(ctx context.Context, key string) (bool, error)
}

type redisBlacklist struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBlacklist shares revocations across instances through redis.
func NewRedisBlacklist(rdb *redis.Client, prefix string) Blacklist {
	return &redisBlacklist{rdb: rdb, prefix: prefix}
}

func (b *redisBlacklist) Add(ctx context.Context, key string, ttl time.Duration) error {
	return b.rdb.Set(ctx, b.prefix+key, 1, ttl).Err()
}

func (b *redisBlacklist) Contains(ctx context.Context, key string) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.prefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type memoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryBlacklist is the single-instance fallback used without redis.
func NewMemoryBlacklist() Blacklist {
	return &memoryBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *memoryBlacklist) Add(_ context.Context, key string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for k, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, k)
		}
	}
	b.entries[key] = now.Add(ttl)
	return nil
}

func (b *memoryBlacklist) Contains(_ context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	exp, ok := b.entries[key]
	return ok && exp.After(b.now()), nil
}
