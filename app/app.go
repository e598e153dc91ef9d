package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/accesscore/core/cookie"
	"github.com/dmitrymomot/accesscore/core/health"
	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/metrics"
	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/server"
	"github.com/dmitrymomot/accesscore/core/session"
	"github.com/dmitrymomot/accesscore/middleware"
	"github.com/dmitrymomot/accesscore/pkg/idcodec"
)

// App wires sessions, the role graph, the identifier codec and the HTTP
// surface around them.
type App struct {
	config   Config
	logger   *slog.Logger
	metrics  *metrics.Collector
	cookies  *cookie.Manager
	store    session.Store
	sessions *session.Manager
	roles    *Roles
	resolver *rbac.Resolver
	codec    *idcodec.Codec
	server   *server.Server
	router   http.Handler
	checks   []health.Check
	closers  []func(context.Context) error
}

// Option configures New.
type Option func(*App) error

// New assembles the App. Dependencies not supplied through options are
// opened from cfg and the environment.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{config: cfg}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if err := a.init(ctx); err != nil {
		_ = a.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	if a.logger == nil {
		a.logger = NewLogger(a.config)
	}
	if a.metrics == nil {
		a.metrics = metrics.New(a.config.MetricsRuntime)
	}

	if a.cookies == nil {
		cm, err := cookie.NewFromConfig(a.config.Cookie)
		if err != nil {
			return err
		}
		if !cm.Signing() {
			a.logger.WarnContext(ctx, "COOKIE_SECRETS not set, session cookie is stored unsigned",
				logger.Component("app"))
		}
		a.cookies = cm
	}

	if a.store == nil {
		b, err := OpenSessionStore(ctx, a.config, a.logger)
		if err != nil {
			return err
		}
		a.store = b.Value
		a.track(b.Check, b.Close)
	}
	if a.sessions == nil {
		a.sessions = session.NewManager(a.store,
			session.WithConfig(a.config.Session),
			session.WithLogger(a.logger),
		)
	}

	if a.roles == nil {
		b, err := OpenRoles(ctx, a.config, a.logger)
		if err != nil {
			return err
		}
		a.roles = &b.Value
		a.track(b.Check, b.Close)
	}
	a.resolver = rbac.NewResolver(a.roles.Repository,
		rbac.WithConfig(a.config.RBAC),
		rbac.WithLogger(a.logger),
	)

	if a.codec == nil {
		codec, err := OpenCodec()
		if err != nil {
			return err
		}
		a.codec = codec
	}

	if a.server == nil {
		srv, err := server.NewFromConfig(a.config.Server, server.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.server = srv
	}

	a.router = a.routes()
	return nil
}

func (a *App) track(check *health.Check, closeFn func(context.Context) error) {
	if check != nil {
		a.checks = append(a.checks, *check)
	}
	if closeFn != nil {
		a.closers = append(a.closers, closeFn)
	}
}

// Run serves the router until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "access layer ready",
		logger.Component("app"),
		slog.String("session_backend", a.config.SessionBackend),
		slog.String("role_backend", a.config.RoleBackend),
		slog.String("addr", a.server.Addr()),
	)
	return a.server.Run(ctx, a.router)
}

// Close releases backends in reverse order of opening.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range slices.Backward(a.closers) {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) Sessions() *session.Manager  { return a.sessions }
func (a *App) Resolver() *rbac.Resolver    { return a.resolver }
func (a *App) Admin() rbac.Administrator   { return a.roles.Admin }
func (a *App) Codec() *idcodec.Codec       { return a.codec }
func (a *App) Metrics() *metrics.Collector { return a.metrics }
func (a *App) Logger() *slog.Logger        { return a.logger }

// SessionCookie returns the cookie binding used by sign-in and sign-out.
func (a *App) SessionCookie() middleware.SessionCookie {
	return middleware.SessionCookie{Sessions: a.sessions, Cookies: a.cookies, Name: a.config.SessionCookieName}
}

// NewLogger builds the process logger for cfg.Env, enriched with request id
// and identity from the request context.
func NewLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithContextExtractors(middleware.LogExtractors()...)}
	switch cfg.Env {
	case "production":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case "staging":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}

	var level slog.Level
	if cfg.LogLevel != "" && level.UnmarshalText([]byte(cfg.LogLevel)) == nil {
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...)
}

// WithLogger overrides the process logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) error {
		if log == nil {
			return errors.Join(ErrNilDependency, errors.New("logger"))
		}
		a.logger = log
		return nil
	}
}

// WithSessionStore injects the session store instead of opening SESSION_BACKEND.
func WithSessionStore(store session.Store) Option {
	return func(a *App) error {
		if store == nil {
			return errors.Join(ErrNilDependency, errors.New("session store"))
		}
		a.store = store
		return nil
	}
}

// WithRoles injects the role graph instead of opening RBAC_BACKEND.
func WithRoles(repo rbac.Repository, admin rbac.Administrator) Option {
	return func(a *App) error {
		if repo == nil || admin == nil {
			return errors.Join(ErrNilDependency, errors.New("role graph"))
		}
		a.roles = &Roles{Repository: repo, Admin: admin}
		return nil
	}
}

// WithCodec injects the identifier codec instead of reading IDCODEC_*.
func WithCodec(codec *idcodec.Codec) Option {
	return func(a *App) error {
		if codec == nil {
			return errors.Join(ErrNilDependency, errors.New("codec"))
		}
		a.codec = codec
		return nil
	}
}

// WithCookieManager injects the cookie manager.
func WithCookieManager(cm *cookie.Manager) Option {
	return func(a *App) error {
		if cm == nil {
			return errors.Join(ErrNilDependency, errors.New("cookie manager"))
		}
		a.cookies = cm
		return nil
	}
}

// WithMetrics injects the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(a *App) error {
		if c == nil {
			return errors.Join(ErrNilDependency, errors.New("metrics"))
		}
		a.metrics = c
		return nil
	}
}

// WithServer injects the HTTP server.
func WithServer(srv *server.Server) Option {
	return func(a *App) error {
		if srv == nil {
			return errors.Join(ErrNilDependency, errors.New("server"))
		}
		a.server = srv
		return nil
	}
}

// Router returns the assembled HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}
