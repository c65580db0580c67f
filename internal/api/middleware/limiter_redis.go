package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnexpectedReply возвращается, если скрипт вернул ответ неожиданного вида
var ErrUnexpectedReply = errors.New("middleware: unexpected rate limiter reply")

// tokenBucketScript KEYS[1] - ключ ведра; ARGV: now_ms, capacity, interval_ms, ttl_seconds.
// Возвращает {allowed, tokens, retry_after_ms}
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

if interval_ms > 0 then
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + intervals)
        last_refill = last_refill + (intervals * interval_ms)
    end
    if tokens >= capacity then
        last_refill = now_ms
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter token bucket в Redis, общий для всех экземпляров сервиса
type RedisLimiter struct {
	client   redis.Scripter
	prefix   string
	limit    int
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
}

// NewRedisLimiter создает лимитер на limit запросов за window
func NewRedisLimiter(client redis.Scripter, prefix string, limit int, window time.Duration) *RedisLimiter {
	ttl := window
	if ttl < time.Second {
		ttl = time.Second
	}
	return &RedisLimiter{
		client:   client,
		prefix:   prefix,
		limit:    limit,
		interval: window / time.Duration(limit),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Allow расходует один токен ключа атомарно на стороне Redis
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	args := []interface{}{
		l.now().UnixMilli(),
		l.limit,
		l.interval.Milliseconds(),
		int64(l.ttl / time.Second),
	}

	vals, err := tokenBucketScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, args...).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 3 {
		return Decision{}, fmt.Errorf("%w: %#v", ErrUnexpectedReply, vals)
	}

	return Decision{
		Allowed:    asInt64(vals[0]) == 1,
		Limit:      l.limit,
		Remaining:  int(asInt64(vals[1])),
		RetryAfter: time.Duration(asInt64(vals[2])) * time.Millisecond,
	}, nil
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
