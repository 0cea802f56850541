package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript denies without incrementing once the counter reaches ARGV[1];
// otherwise it increments and opens the window on the first hit
// KEYS[1] counter key, ARGV[1] max, ARGV[2] window in ms
// returns {count, pttl_ms, allowed}
var hitScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local max = tonumber(ARGV[1])
if current >= max then
  return {current, redis.call('PTTL', KEYS[1]), 0}
end
local count = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if count == 1 or ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
  ttl = tonumber(ARGV[2])
end
return {count, ttl, 1}
`)

// RedisStore shares counters between instances; key expiry replaces stale windows
type RedisStore struct {
	client redis.Scripter
	prefix string
}

// NewRedisStore returns a store using keys "<prefix><limiter>:<client>"
func NewRedisStore(client redis.Scripter, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Hit implements Store
func (s *RedisStore) Hit(ctx context.Context, key string, p Policy, now time.Time) (Entry, bool, error) {
	res, err := hitScript.Run(ctx, s.client, []string{s.prefix + key}, p.Max, p.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return Entry{}, false, fmt.Errorf("ratelimit redis: %w", err)
	}
	if len(res) != 3 {
		return Entry{}, false, fmt.Errorf("ratelimit redis: unexpected reply %v", res)
	}
	ttl := time.Duration(max(res[1], 0)) * time.Millisecond
	return Entry{Count: int(res[0]), ResetAt: now.Add(ttl)}, res[2] == 1, nil
}
