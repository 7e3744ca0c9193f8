package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimit creates a per-client rate limiter middleware instance, keyed by
// authenticated principal when available and client IP otherwise.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			principal := fmt.Sprintf("%v", c.Locals(LocalPrincipalID))
			if principal == "" || principal == "<nil>" || principal == "0" {
				principal = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, principal)
		},
	})
}
