package config

import "time"

// RateLimitConfig controls the fixed-window limiter guarding the refresh
// endpoint. A refresh fans out to two external APIs and rewrites the whole
// table, so it is the one route worth limiting. The limiter is advisory
// only; it does not serialize overlapping refreshes.
type RateLimitConfig struct {
	Enabled bool
	Limit   int           // requests allowed per window, per client IP
	Window  time.Duration // window length
	Prefix  string        // Redis key namespace
}

// LoadRateLimitConfig reads the RATE_LIMIT_* environment variables, with
// defaults sized for a manually-triggered refresh.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envBool("RATE_LIMIT_ENABLED", true),
		Limit:   envInt("RATE_LIMIT_REQUESTS", 5),
		Window:  envDur("RATE_LIMIT_WINDOW", time.Minute),
		Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return cfg
}
