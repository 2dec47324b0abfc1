package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries every runtime setting. It is constructed once in main and
// passed by reference to each client and handler; nothing reads the
// environment after Load returns.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	Gateway  GatewayConfig
	Frontend FrontendConfig

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	RateLimit RateLimitConfig

	// RedisURL, when set, backs the rate-limit window with Redis so multiple
	// replicas share one counter. Empty means an in-process window.
	RedisURL string `envconfig:"REDIS_URL"`
}

// GatewayConfig configures the unified-messaging gateway integration.
type GatewayConfig struct {
	APIKey  string `envconfig:"GATEWAY_API_KEY"`
	BaseURL string `envconfig:"GATEWAY_API_URL" default:"https://api.unipile.com/v1"`
}

// FrontendConfig locates the SPA that OAuth redirects land on.
type FrontendConfig struct {
	BaseURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
}

// RateLimitConfig is the inbound fixed-window limit, per client IP.
type RateLimitConfig struct {
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Gateway.APIKey == "" {
		return fmt.Errorf("GATEWAY_API_KEY is required")
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("GATEWAY_API_URL is required")
	}
	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// IsProduction reports whether error detail should be suppressed.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
