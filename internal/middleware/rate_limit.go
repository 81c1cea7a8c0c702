package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit limits how often one client IP may hit the wrapped routes. A nil
// storage keeps counters in process memory; limitReached renders the 429.
func RateLimit(identifier string, max int, window time.Duration, storage fiber.Storage, limitReached fiber.Handler) fiber.Handler {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = time.Minute
	}

	cfg := limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return identifier + ":" + c.IP()
		},
		Storage: storage,
	}
	if limitReached != nil {
		cfg.LimitReached = limitReached
	}

	return limiter.New(cfg)
}
