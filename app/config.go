package app

import (
	"time"

	"github.com/dmitrymomot/accesscore/core/cookie"
	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/server"
	"github.com/dmitrymomot/accesscore/core/session"
)

// Session store backends.
const (
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config assembles the access layer. Backend connection settings
// (pg.Config, redis.Config, mongo.Config, idcodec.Config) are loaded only
// when the selected backend needs them.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"accessd"`
	Env      string `env:"APP_ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SessionBackend    string `env:"SESSION_BACKEND" envDefault:"redis"`
	SessionCollection string `env:"SESSION_MONGO_COLLECTION" envDefault:"sessions"`
	RoleBackend       string `env:"RBAC_BACKEND" envDefault:"postgres"`
	SeedFile          string `env:"RBAC_SEED_FILE"`

	SessionCookieName string   `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	ProtectedPrefixes []string `env:"GATE_PROTECTED_PREFIXES" envDefault:"/admin" envSeparator:","`

	// DevRoutes mounts POST /dev/login, which signs in any user id without
	// credentials. It has no environment variable; only `serve --dev` sets it.
	DevRoutes bool

	MetricsRuntime   bool          `env:"METRICS_RUNTIME" envDefault:"true"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`

	Cookie  cookie.Config
	Session session.Config
	RBAC    rbac.Config
	Server  server.Config
}
