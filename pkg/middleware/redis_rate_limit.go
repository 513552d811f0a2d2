package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkling-notes/inkling-server/pkg/metrics"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimit provides a coarse fixed-window limiter suitable for
// multi-instance deployments: INCR a per-window key and compare against
// allowed = floor(rps*windowSeconds)+burst. Falls back to the in-memory
// limiter when no client is available.
func RedisRateLimit(client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimit(rps, burst)
	}
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowedPerWindow := int(rps*float64(windowSeconds)) + burst

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		windowStart := time.Now().Unix() / int64(windowSeconds)
		key := fmt.Sprintf("ratelimit:%s:%d", limiterKey(c), windowStart)

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// fail open: a Redis outage must not take the API down with it
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, time.Duration(windowSeconds+1)*time.Second)
		}
		if count > int64(allowedPerWindow) {
			c.Header("Retry-After", fmt.Sprintf("%d", windowSeconds))
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		c.Next()
	}
}
