package http

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterConfig defines per-host request pacing.
type RateLimiterConfig struct {
	// RPS is the default requests-per-second budget per host.
	RPS float64
	// Burst is the token bucket burst size.
	Burst int
	// HostRates maps specific hosts to RPS values overriding the default.
	HostRates map[string]float64
}

// DefaultRateLimiterConfig returns conservative defaults for scraping
// youtube.com without tripping its anti-abuse thresholds.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RPS:       2.5,
		Burst:     2,
		HostRates: make(map[string]float64),
	}
}

// RateLimiter paces requests per host using a token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	config   RateLimiterConfig
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.RPS <= 0 {
		cfg.RPS = DefaultRateLimiterConfig().RPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig().Burst
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		config:   cfg,
	}
}

// Wait blocks until the host's bucket permits another request or the context
// is canceled.
func (rl *RateLimiter) Wait(ctx context.Context, urlStr string) error {
	return rl.limiterFor(extractHost(urlStr)).Wait(ctx)
}

// limiterFor returns (creating if needed) the limiter for a host.
func (rl *RateLimiter) limiterFor(host string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if l, ok := rl.limiters[host]; ok {
		return l
	}

	rps := rl.config.RPS
	if custom, ok := rl.config.HostRates[host]; ok && custom > 0 {
		rps = custom
	}

	l := rate.NewLimiter(rate.Limit(rps), rl.config.Burst)
	rl.limiters[host] = l
	return l
}

// extractHost pulls the host out of a URL for limiter and breaker keying.
// Unparseable URLs share a single bucket.
func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
