package rbac

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/accesscore/core/logger"
)

// Config holds resolver configuration.
type Config struct {
	QueryTimeout time.Duration `env:"RBAC_QUERY_TIMEOUT" envDefault:"2s"`
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{QueryTimeout: 2 * time.Second}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfig applies cfg; zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) {
		if cfg.QueryTimeout > 0 {
			r.cfg.QueryTimeout = cfg.QueryTimeout
		}
	}
}

// WithQueryTimeout bounds each repository read.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.cfg.QueryTimeout = d
		}
	}
}

// WithLogger sets the logger (default: discard).
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

func defaultLogger() *slog.Logger {
	return logger.Nop()
}
