package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindow counts hits per key in redis so every API replica shares one
// budget. The first hit in a window sets the expiry.
type FixedWindow struct {
	redisdb redis.Cmdable
	prefix  string
	limit   int
	window  time.Duration
}

func (c *Client) FixedWindow(prefix string, limit int, window time.Duration) *FixedWindow {
	return newFixedWindow(c.redisdb, prefix, limit, window)
}

func newFixedWindow(rdb redis.Cmdable, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{redisdb: rdb, prefix: prefix, limit: limit, window: window}
}

// Allow reports whether key may proceed and, when it may not, how long until
// the window resets.
func (f *FixedWindow) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := f.prefix + ":" + key

	pipe := f.redisdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, f.window)
	ttl := pipe.PTTL(ctx, k)

	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, fmt.Errorf("rate limit %s: %w", k, err)
	}

	allowed, retry := f.verdict(incr.Val(), ttl.Val())
	return allowed, retry, nil
}

// verdict turns the window count and remaining key TTL into a decision. A
// negative TTL means redis lost the expiry; the caller then waits a full
// window.
func (f *FixedWindow) verdict(count int64, ttl time.Duration) (bool, time.Duration) {
	if count <= int64(f.limit) {
		return true, 0
	}
	if ttl < 0 {
		return false, f.window
	}
	return false, ttl
}
