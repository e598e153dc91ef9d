package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/accesscore/core/logger"
)

// Config holds session manager configuration.
type Config struct {
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	StoreTimeout time.Duration `env:"SESSION_STORE_TIMEOUT" envDefault:"2s"`
	KeyPrefix    string        `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		TTL:          24 * time.Hour,
		StoreTimeout: 2 * time.Second,
		KeyPrefix:    "session:",
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithConfig replaces the whole configuration. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		if cfg.TTL > 0 {
			m.cfg.TTL = cfg.TTL
		}
		if cfg.StoreTimeout > 0 {
			m.cfg.StoreTimeout = cfg.StoreTimeout
		}
		if cfg.KeyPrefix != "" {
			m.cfg.KeyPrefix = cfg.KeyPrefix
		}
	}
}

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.cfg.TTL = ttl
		}
	}
}

// WithStoreTimeout bounds every store call. A timeout is reported as ErrStoreUnavailable.
func WithStoreTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.cfg.StoreTimeout = d
		}
	}
}

// WithKeyPrefix namespaces storage keys.
func WithKeyPrefix(prefix string) Option {
	return func(m *Manager) {
		if prefix != "" {
			m.cfg.KeyPrefix = prefix
		}
	}
}

// WithLogger sets the logger (default: discard).
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock overrides time.Now for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func defaultLogger() *slog.Logger {
	return logger.Nop()
}
