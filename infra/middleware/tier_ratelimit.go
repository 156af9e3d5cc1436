package middleware

import (
	"net/http"
	"strconv"

	"tier_server/pkg/apperr"
	"tier_server/pkg/logger"
	"tier_server/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimit throttles admin requests per client IP. A nil limiter disables
// throttling.
func RateLimit(limiter *ratelimit.SlidingWindowLimiter) fiber.Handler {
	if limiter == nil {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		result, err := limiter.Allow(c.Context(), c.IP())
		if err != nil {
			// Limiter already failed open; just record the Redis trouble.
			logger.WithError(err).Warn("rate limiter check failed")
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if !result.Allowed {
			c.Set("Retry-After", strconv.Itoa(int(result.ResetIn.Seconds())))
			return apperr.New("RATE_LIMITED", "too many requests", http.StatusTooManyRequests)
		}
		return c.Next()
	}
}
