package ratelimit

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"hr-recruitment/internal/config"

	"github.com/redis/go-redis/v9"
)

const fixedWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// Limiter is a fixed-window counter in Redis. When Redis is unreachable
// every request is allowed.
type Limiter struct {
	client *redis.Client
	script *redis.Script
	logger *log.Logger
	prefix string

	warnedUnavailable atomic.Bool
}

// NewRedisClient returns nil when no address is configured or the server
// does not answer a ping.
func NewRedisClient(cfg config.RedisConfig, logger *log.Logger) *redis.Client {
	if cfg.Addr == "" {
		if logger != nil {
			logger.Printf("[RateLimit] REDIS_ADDR not set, rate limiting disabled")
		}
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[RateLimit] Redis unavailable, rate limiting disabled: %v", err)
		}
		_ = client.Close()
		return nil
	}
	return client
}

func NewLimiter(client *redis.Client, prefix string, logger *log.Logger) *Limiter {
	return &Limiter{
		client: client,
		script: redis.NewScript(fixedWindowScript),
		logger: logger,
		prefix: prefix,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{l.prefix + key}, ttl, limit).Int64()
	if err != nil {
		l.warnUnavailableOnce(err)
		return true
	}
	return allowed == 1
}

func (l *Limiter) warnUnavailableOnce(err error) {
	if l.logger == nil {
		return
	}
	if l.warnedUnavailable.CompareAndSwap(false, true) {
		l.logger.Printf("[RateLimit] Redis error, allowing requests: %v", err)
	}
}
