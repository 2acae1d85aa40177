package config

import "time"

// ServerConfig configures `homestead serve`
type ServerConfig struct {
	// host:port the HTTP API listens on
	Address string `mapstructure:"address" validate:"required"`

	// Refuses a second server on the same database
	PIDFile string `mapstructure:"pid_file"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Timeouts  TimeoutConfig   `mapstructure:"timeouts"`
}

// RateLimitConfig is the token bucket each actor gets
type RateLimitConfig struct {
	Requests int `mapstructure:"requests" validate:"min=1"`
	Burst    int `mapstructure:"burst" validate:"min=1"`
}

// TimeoutConfig holds the HTTP server timeouts
type TimeoutConfig struct {
	Read     time.Duration `mapstructure:"read"`
	Write    time.Duration `mapstructure:"write"`
	Shutdown time.Duration `mapstructure:"shutdown"`
}
