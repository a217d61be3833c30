package session

import "time"

type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"presence_session"`
	HeaderName string        `env:"SESSION_HEADER_NAME" envDefault:"X-Session-Token"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	// ActivityUpdateThreshold is the minimum gap between sliding-expiry writes.
	ActivityUpdateThreshold time.Duration `env:"SESSION_ACTIVITY_UPDATE_THRESHOLD" envDefault:"5m"`
	// CleanupInterval applies to the in-memory store only; 0 disables it.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

func DefaultConfig() Config {
	return Config{
		CookieName:              "presence_session",
		HeaderName:              DefaultHeaderName,
		TTL:                     30 * 24 * time.Hour,
		ActivityUpdateThreshold: 5 * time.Minute,
		CleanupInterval:         5 * time.Minute,
	}
}

// NewFromConfig creates a Manager from cfg; opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
