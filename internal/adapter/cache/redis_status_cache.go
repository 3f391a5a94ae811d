package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

// RedisStatusCache mirrors the latest order status for cheap shopper-side
// polling. MySQL stays authoritative; misses fall through to the repo.
type RedisStatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStatusCache(rdb *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{rdb: rdb, ttl: ttl}
}

func (r *RedisStatusCache) SetStatus(ctx context.Context, orderID, status string) error {
	return r.rdb.Set(ctx, "order:status:"+orderID, status, r.ttl).Err()
}

func (r *RedisStatusCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	val, err := r.rdb.Get(ctx, "order:status:"+orderID).Result()
	if err == redis.Nil {
		return "", usecase.ErrNotFound
	}
	return val, err
}

var _ usecase.StatusCache = (*RedisStatusCache)(nil)
