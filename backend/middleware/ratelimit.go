package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/skinmarket/market/backend/utils"
)

// RateLimiter is a fixed-window limiter keyed by client. The client table is
// bounded; the least recently seen clients are evicted first.
type RateLimiter struct {
	clients *lru.Cache
	mutex   sync.Mutex
	window  time.Duration
	limit   int
	now     func() time.Time
}

type bucket struct {
	start time.Time
	count int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration, maxClients int) (*RateLimiter, error) {
	clients, err := lru.New(maxClients)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		clients: clients,
		window:  window,
		limit:   limit,
		now:     time.Now,
	}, nil
}

// Allow checks if a request should be allowed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	if v, ok := rl.clients.Get(key); ok {
		b := v.(*bucket)
		if now.Sub(b.start) < rl.window {
			if b.count >= rl.limit {
				return false
			}
			b.count++
			return true
		}
	}
	rl.clients.Add(key, &bucket{start: now, count: 1})
	return true
}

// RateLimit middleware limits requests per IP address
func RateLimit(limiter *RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := utils.GetIPAddress(c)

		if !limiter.Allow(ip) {
			slog.Warn("Rate limit exceeded",
				slog.String("type", "http"),
				slog.String("ip", ip),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.Int("limit", limiter.limit),
				slog.Duration("window", limiter.window))

			return utils.SendError(c, fiber.StatusTooManyRequests, "Too many requests. Please try again later.")
		}

		return c.Next()
	}
}
