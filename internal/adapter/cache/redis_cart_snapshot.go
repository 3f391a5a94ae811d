package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/cart"
)

// RedisCartSnapshot persists one session's cart under a well-known key so
// the selection survives page loads without a server-side session object.
type RedisCartSnapshot struct {
	rdb     *redis.Client
	session string
	ttl     time.Duration
}

func NewRedisCartSnapshot(rdb *redis.Client, session string, ttl time.Duration) *RedisCartSnapshot {
	return &RedisCartSnapshot{rdb: rdb, session: session, ttl: ttl}
}

func (s *RedisCartSnapshot) key() string { return "cart:items:" + s.session }

func (s *RedisCartSnapshot) Load(ctx context.Context) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, s.key()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return raw, err
}

func (s *RedisCartSnapshot) Save(ctx context.Context, data []byte) error {
	return s.rdb.Set(ctx, s.key(), data, s.ttl).Err()
}

func (s *RedisCartSnapshot) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key()).Err()
}

var _ cart.Snapshot = (*RedisCartSnapshot)(nil)
