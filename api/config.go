package api

import (
	"fmt"
	"net"
)

// Config holds the HTTP API settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr      string          `json:"addr"`
	RateLimit RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig bounds requests per client IP. RequestsPerMinute <= 0
// disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int `json:"requests_per_minute"`
	Burst             int `json:"burst"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.RateLimit.RequestsPerMinute > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = c.RateLimit.RequestsPerMinute
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("server addr %q: %w", c.Addr, err)
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}
	return nil
}
