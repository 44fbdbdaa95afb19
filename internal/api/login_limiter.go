package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

const (
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

// loginLimiter throttles PIN guessing. It remembers failed logins per
// client address and profile name and locks that pair once limit failures
// fall inside the trailing window. A successful login clears the pair.
type loginLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures map[string][]time.Time
}

func newLoginLimiter(limit int, window time.Duration) *loginLimiter {
	return &loginLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// locked reports whether key is throttled at now and, if so, how long until
// the oldest counted failure leaves the window.
func (limiter *loginLimiter) locked(key string, now time.Time) (bool, time.Duration) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.recentLocked(key, now)
	if len(recent) < limiter.limit {
		return false, 0
	}
	retryAfter := recent[len(recent)-limiter.limit].Add(limiter.window).Sub(now)
	if retryAfter < time.Second {
		retryAfter = time.Second
	}
	return true, retryAfter
}

func (limiter *loginLimiter) recordFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.failures[key] = append(limiter.recentLocked(key, now), now)
}

func (limiter *loginLimiter) clear(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

// recentLocked drops failures older than the window and returns the rest.
func (limiter *loginLimiter) recentLocked(key string, now time.Time) []time.Time {
	values := limiter.failures[key]
	if len(values) == 0 {
		return nil
	}

	threshold := now.Add(-limiter.window)
	recent := values[:0]
	for _, value := range values {
		if value.After(threshold) {
			recent = append(recent, value)
		}
	}

	if len(recent) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = recent
	return recent
}

// loginLimiterKey scopes failures to the client address and the profile name
// tried, so one guessed name does not lock out every profile behind a proxy.
func loginLimiterKey(c *fiber.Ctx, profileName string) string {
	address := strings.TrimSpace(c.IP())
	if address == "" {
		address = "unknown"
	}
	return address + "|" + services.NormalizeProfileName(profileName)
}
