package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) TryLock(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, "idemp:booking:"+key, "1", s.ttl).Result()
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, key, orderID string) error {
	return s.rdb.Set(ctx, "idemp:booking:map:"+key, orderID, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, "idemp:booking:map:"+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	return val, true, err
}

var _ usecase.IdempotencyStore = (*RedisIdempotencyStore)(nil)
