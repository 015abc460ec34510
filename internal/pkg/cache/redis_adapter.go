package cache

import (
	"context"
	"time"

	redisrepo "go-shopadmin/internal/repository/redis"
)

// RedisAdapter exposes the shared redis client through the Cache interface.
type RedisAdapter struct{ c *redisrepo.Client }

func NewRedisAdapter(c *redisrepo.Client) *RedisAdapter { return &RedisAdapter{c: c} }

func (r *RedisAdapter) Get(ctx context.Context, key string) (string, error) {
	return r.c.Get(ctx, key), nil
}

func (r *RedisAdapter) SetEX(ctx context.Context, key, val string, ttl time.Duration) error {
	return r.c.SetTTL(ctx, key, val, ttl)
}

func (r *RedisAdapter) Del(ctx context.Context, keys ...string) error {
	r.c.Del(ctx, keys...)
	return nil
}

// RemainingTTL implements TTLFetcher. TTL of -2 means missing, -1 no expiry.
func (r *RedisAdapter) RemainingTTL(ctx context.Context, key string) (time.Duration, bool) {
	res := r.c.Client.TTL(ctx, key)
	if err := res.Err(); err != nil {
		return 0, false
	}
	if d := res.Val(); d > 0 {
		return d, true
	}
	return 0, false
}
