package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/feedbacklens/feedback-backend/errors"
	"github.com/feedbacklens/feedback-backend/logger"
)

// CounterStore tracks request counts per key within a rolling window. It is
// injected into the rate limiter so deployments can choose Redis (shared
// across instances) or an in-process TTL cache, and tests can substitute
// either.
type CounterStore interface {
	// Incr increments the counter for key, (re)arming its expiry to window,
	// and returns the new count plus the time until the counter resets.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisCounterStore counts with Redis INCR+EXPIRE so the quota is shared
// across horizontally scaled instances.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	// Pipeline for atomic increment + expiry refresh
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}
	return incr.Val(), window, nil
}

// MemoryCounterStore counts in-process with a TTL cache. Suitable for
// single-instance deployments and development.
type MemoryCounterStore struct {
	cache *ttlcache.Cache[string, *atomic.Int64]
}

func NewMemoryCounterStore() *MemoryCounterStore {
	cache := ttlcache.New[string, *atomic.Int64]()
	go cache.Start()
	return &MemoryCounterStore{cache: cache}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	item, _ := s.cache.GetOrSet(key, &atomic.Int64{}, ttlcache.WithTTL[string, *atomic.Int64](window))
	count := item.Value().Add(1)
	return count, time.Until(item.ExpiresAt()), nil
}

// Stop shuts down the cache's expiration goroutine.
func (s *MemoryCounterStore) Stop() {
	s.cache.Stop()
}

// SubmissionRateLimiter limits feedback submissions per client IP to
// maxPerWindow within window. Counter failures fail open so the API stays
// available when the backing store is down.
func SubmissionRateLimiter(counters CounterStore, maxPerWindow int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		key := fmt.Sprintf("ratelimit:feedback:%s", ip)

		count, ttl, err := counters.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxPerWindow))

		if count > int64(maxPerWindow) {
			retryAfter := int(ttl.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(ttl).Unix()))

			_ = c.Error(apperrors.RateLimitExceeded("Too many submissions. Please try again later.", retryAfter))
			c.Abort()
			return
		}

		remaining := maxPerWindow - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(ttl).Unix()))

		c.Next()
	}
}

// getClientIP extracts the real client IP from the request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxies/load
// balancers), then falls back to gin's ClientIP.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}
