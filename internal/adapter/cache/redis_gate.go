package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/gate"
)

// RedisGate keeps the single-use funnel flags in Redis with a session TTL.
// GETDEL gives the read-once-then-clear semantics in a single round trip,
// so two concurrent checks cannot both pass.
type RedisGate struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGate(rdb *redis.Client, ttl time.Duration) *RedisGate {
	return &RedisGate{rdb: rdb, ttl: ttl}
}

func key(session string, step gate.Step) string {
	return "gate:" + session + ":" + string(step)
}

func (g *RedisGate) MarkPassed(ctx context.Context, session string, step gate.Step) error {
	return g.rdb.Set(ctx, key(session, step), "1", g.ttl).Err()
}

func (g *RedisGate) CheckAndConsume(ctx context.Context, session string, step gate.Step) (bool, error) {
	_, err := g.rdb.GetDel(ctx, key(session, step)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ gate.Gate = (*RedisGate)(nil)
