package authinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/internhub/pkg/logx"
	"github.com/go-redis/redis/v8"
)

const loginLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const loginLimitPrefix = "auth:login:"

// RedisLoginLimiter counts attempts per key in a fixed window
type RedisLoginLimiter struct {
	client *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
}

func NewRedisLoginLimiter(client *redis.Client, limit int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{
		client: client,
		script: redis.NewScript(loginLimitScript),
		limit:  limit,
		window: window,
	}
}

func (l *RedisLoginLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil || key == "" || l.limit <= 0 || l.window <= 0 {
		return true
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{loginLimitPrefix + key}, ttl, l.limit).Int64()
	if err != nil {
		logx.Debugf("login limiter unavailable, allowing: %v", err)
		return true
	}
	return allowed == 1
}

func (l *RedisLoginLimiter) Reset(ctx context.Context, key string) {
	if l == nil || l.client == nil || key == "" {
		return
	}
	if err := l.client.Del(ctx, loginLimitPrefix+key).Err(); err != nil {
		logx.Debugf("failed to reset login limiter for %s: %v", key, err)
	}
}
