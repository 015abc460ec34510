package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is the shared interface for the L1 memory cache, the redis adapter
// and the layered combination. Values are strings; JSON encoding is the
// caller's business. Listers never go through here; list/count queries hit
// the database every time.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEX(ctx context.Context, key, val string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// TTLFetcher is an optional capability: report the remaining TTL so the
// layered cache can backfill L1 without extending expiry.
type TTLFetcher interface {
	RemainingTTL(ctx context.Context, key string) (time.Duration, bool)
}

type item struct {
	val string
	exp time.Time
}

// Memory is a thread-safe in-process TTL cache implementing Cache.
type Memory struct {
	mu   sync.RWMutex
	data map[string]item
}

func NewMemory() *Memory { return &Memory{data: make(map[string]item)} }

func (c *Memory) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || (!it.exp.IsZero() && time.Now().After(it.exp)) {
		return "", nil
	}
	return it.val, nil
}

func (c *Memory) SetEX(_ context.Context, key, val string, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.data[key] = item{val: val, exp: exp}
	c.mu.Unlock()
	return nil
}

func (c *Memory) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *Memory) RemainingTTL(_ context.Context, key string) (time.Duration, bool) {
	c.mu.RLock()
	it, ok := c.data[key]
	c.mu.RUnlock()
	if !ok || it.exp.IsZero() || time.Now().After(it.exp) {
		return 0, false
	}
	return time.Until(it.exp), true
}
