package middleware

import (
	"sync"
	"time"

	"crm/config"
	"crm/internal/delivery/api/response"
	domainerrors "crm/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const limiterIdleWindow = 5 * time.Minute

// RateLimiter throttles credential endpoints per client IP.
// A nil RateLimiter lets every request through.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	window  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter builds the limiter from config, or returns nil when disabled.
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	if cfg.RateLimit == nil || !cfg.RateLimit.Enabled {
		return nil
	}

	return newRateLimiter(cfg.RateLimit.RequestsPerMinute)
}

func newRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}

	return &RateLimiter{
		limit:   rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:   max(requestsPerMinute/10, 1),
		window:  limiterIdleWindow,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Limit is the echo middleware enforcing the budget.
func (r *RateLimiter) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	if r == nil {
		return next
	}

	return func(c echo.Context) error {
		if !r.allow(c.RealIP()) {
			c.Response().Header().Set("Retry-After", "60")

			return response.HandleAppError(c, domainerrors.ErrTooManyRequests)
		}

		return next(c)
	}
}

func (r *RateLimiter) allow(key string) bool {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.clients[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst), lastSeen: now}
		r.clients[key] = entry
		r.cleanupLocked(now)
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}

func (r *RateLimiter) cleanupLocked(now time.Time) {
	for key, entry := range r.clients {
		if now.Sub(entry.lastSeen) > r.window {
			delete(r.clients, key)
		}
	}
}
