// Package ratelimit provides rate limiting middleware for ingestion endpoints.
package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/pocketmark/api/internal/pkg/log"
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	Enabled  bool
	Max      int
	Duration time.Duration
}

// New creates rate limiting middleware for an endpoint group. When disabled it
// returns a pass-through handler.
func New(cfg Config) fiber.Handler {
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Duration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn("rate limit exceeded for %s on %s", c.IP(), c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":    "RATE_LIMIT_EXCEEDED",
				"message": "Too many requests, please try again later",
			})
		},
	})
}
