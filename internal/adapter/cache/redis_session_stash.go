package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStash carries small per-session payloads between funnel steps
// (the order summary the payment and ticket views render). Entries expire
// with the session; a shopper who closes the tab mid-flow restarts from the
// catalog.
type RedisSessionStash struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStash(rdb *redis.Client, ttl time.Duration) *RedisSessionStash {
	return &RedisSessionStash{rdb: rdb, ttl: ttl}
}

func stashKey(session, name string) string { return "sess:" + session + ":" + name }

func (s *RedisSessionStash) Put(ctx context.Context, session, name string, payload []byte) error {
	return s.rdb.Set(ctx, stashKey(session, name), payload, s.ttl).Err()
}

func (s *RedisSessionStash) Get(ctx context.Context, session, name string) ([]byte, bool, error) {
	raw, err := s.rdb.Get(ctx, stashKey(session, name)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *RedisSessionStash) Delete(ctx context.Context, session, name string) error {
	return s.rdb.Del(ctx, stashKey(session, name)).Err()
}
