package middleware

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when the quota store (Redis)
// cannot be reached.
type FailPolicy int

const (
	// FailOpen lets the request through. The default for user-facing routes.
	FailOpen FailPolicy = iota
	// FailClosed rejects the request with 503.
	FailClosed
)

// Quota is a named request budget enforced per caller over a fixed window.
// The subject is the authenticated user when available, the remote IP
// otherwise, so signup abuse and logged-in abuse are throttled separately.
type Quota struct {
	Name   string
	Max    int
	Per    time.Duration
	Policy FailPolicy
}

// quotasDisabled reports whether throttling is switched off for the current
// environment. Test and development runs are never throttled.
func quotasDisabled() bool {
	switch os.Getenv("APP_ENV") {
	case "", "test", "development":
		return true
	}
	return false
}

// Allow consumes one unit of the quota for subject and reports whether the
// request is still within budget. The counter lives in Redis under
// quota:<name>:<subject> and expires with the window.
func (q Quota) Allow(ctx context.Context, rdb *redis.Client, subject string) (bool, error) {
	if quotasDisabled() {
		return true, nil
	}
	if rdb == nil {
		return false, fmt.Errorf("quota %q: redis client is nil", q.Name)
	}

	key := fmt.Sprintf("quota:%s:%s", q.Name, subject)
	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		rdb.Expire(ctx, key, q.Per)
	}
	return count <= int64(q.Max), nil
}

// subject identifies the caller for quota accounting.
func subject(c *fiber.Ctx) string {
	if uid := c.Locals("userID"); uid != nil {
		return fmt.Sprintf("user:%v", uid)
	}
	return "ip:" + c.IP()
}

// RateLimit returns a middleware enforcing the quota on each request.
func RateLimit(rdb *redis.Client, q Quota) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := q.Allow(c.UserContext(), rdb, subject(c))
		if err != nil {
			if q.Policy == FailClosed {
				log.Printf("WARNING: quota %q unavailable, failing closed for %s: %v", q.Name, c.Path(), err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "rate limit unavailable",
				})
			}
			return c.Next()
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}
