package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
)

type Allower interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimit caps requests per client IP within a fixed window. A nil limiter
// or non-positive limit disables the check.
func RateLimit(l Allower, name string, limit int, window time.Duration, message string) fiber.Handler {
	if message == "" {
		message = "Too many requests, please try again later."
	}
	return func(c fiber.Ctx) error {
		if l == nil || limit <= 0 {
			return c.Next()
		}
		if !l.Allow(c.Context(), name+":"+c.IP(), limit, window) {
			return NewAppError(fiber.StatusTooManyRequests, message, nil, nil)
		}
		return c.Next()
	}
}
