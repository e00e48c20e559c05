package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter decides whether the caller identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int, err error)
	Limit() int
	Window() time.Duration
}

// RateLimiter is an in-process token bucket per key
type RateLimiter struct {
	mu           sync.Mutex
	tokens       map[string]int
	lastRefill   map[string]time.Time
	maxTokens    int
	refillRate   int
	refillPeriod time.Duration
	now          func() time.Time
}

// NewRateLimiter allows maxTokens requests per key and adds refillRate
// tokens back every refillPeriod
func NewRateLimiter(maxTokens, refillRate int, refillPeriod time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:       make(map[string]int),
		lastRefill:   make(map[string]time.Time),
		maxTokens:    maxTokens,
		refillRate:   refillRate,
		refillPeriod: refillPeriod,
		now:          time.Now,
	}
}

// PerMinute is a bucket of n tokens refilled in full every minute
func PerMinute(n int) *RateLimiter {
	return NewRateLimiter(n, n, time.Minute)
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if _, ok := rl.tokens[key]; !ok {
		rl.tokens[key] = rl.maxTokens
		rl.lastRefill[key] = now
	}

	if refills := int(now.Sub(rl.lastRefill[key]) / rl.refillPeriod); refills > 0 {
		rl.tokens[key] = min(rl.tokens[key]+refills*rl.refillRate, rl.maxTokens)
		rl.lastRefill[key] = rl.lastRefill[key].Add(time.Duration(refills) * rl.refillPeriod)
	}

	if rl.tokens[key] > 0 {
		rl.tokens[key]--
		return true, rl.tokens[key], nil
	}
	return false, 0, nil
}

func (rl *RateLimiter) Limit() int { return rl.maxTokens }

func (rl *RateLimiter) Window() time.Duration { return rl.refillPeriod }

// fixed window counter; the first hit in a window sets its expiry
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisRateLimiter shares a fixed window counter between instances
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "frontdesigner:ratelimit:",
	}
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	count, err := fixedWindowScript.Run(ctx, rl.client,
		[]string{rl.prefix + key}, rl.window.Milliseconds()).Int()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit script: %w", err)
	}
	if count > rl.limit {
		return false, 0, nil
	}
	return true, rl.limit - count, nil
}

func (rl *RedisRateLimiter) Limit() int { return rl.limit }

func (rl *RedisRateLimiter) Window() time.Duration { return rl.window }

// RateLimit limits requests per client IP. Limiter errors let the request
// through.
func RateLimit(l Limiter, logger *zap.Logger) gin.HandlerFunc {
	limit := strconv.Itoa(l.Limit())
	retryAfter := strconv.Itoa(int(math.Ceil(l.Window().Seconds())))

	return func(c *gin.Context) {
		allowed, remaining, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request",
				zap.String("client_ip", c.ClientIP()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", retryAfter)
			RespondError(c, http.StatusTooManyRequests, "Too many requests", "Please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
