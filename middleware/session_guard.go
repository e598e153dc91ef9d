package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/accesscore/core/cookie"
	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/metrics"
	"github.com/dmitrymomot/accesscore/core/response"
	"github.com/dmitrymomot/accesscore/core/session"
	"github.com/dmitrymomot/accesscore/pkg/clientip"
)

// SessionResolver resolves a session token. *session.Manager implements it.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (session.Identity, bool, error)
}

// CookieReader reads the session cookie. *cookie.Manager implements it.
type CookieReader interface {
	Read(r *http.Request, name string) (string, error)
}

// SessionGuardConfig configures RequireSession.
type SessionGuardConfig struct {
	// Sessions resolves tokens (required).
	Sessions SessionResolver
	// Cookies reads the cookie, verifying its signature when secrets are set (required).
	Cookies CookieReader
	// CookieName is the session cookie name (required).
	CookieName string
	// Fallback answers requests without a valid session (default: generic 404).
	Fallback http.Handler
	// Unavailable answers when the session store fails (default: generic 503).
	Unavailable http.Handler
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// Metrics records one outcome per resolution (optional)
	Metrics *metrics.Collector
}

// RequireSession fully verifies the session cookie against the store and
// stores the Identity in the request context. Missing, tampered, expired and
// unknown tokens all get the Fallback response. A store failure is never
// treated as anonymous access: it is logged and answered with Unavailable.
func RequireSession(cfg SessionGuardConfig) func(http.Handler) http.Handler {
	if cfg.Sessions == nil {
		panic("session guard: session resolver is required")
	}
	if cfg.Cookies == nil {
		panic("session guard: cookie reader is required")
	}
	if cfg.CookieName == "" {
		panic("session guard: cookie name is required")
	}
	if cfg.Fallback == nil {
		cfg.Fallback = response.NotFound()
	}
	if cfg.Unavailable == nil {
		cfg.Unavailable = errorHandler(response.ErrServiceUnavailable)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			token, err := cfg.Cookies.Read(r, cfg.CookieName)
			if err != nil {
				if !errors.Is(err, cookie.ErrCookieNotFound) {
					cfg.Logger.WarnContext(ctx, "rejected session cookie",
						logger.Component("session_guard"),
						logger.RemoteAddr(clientip.GetIP(r)),
						logger.Error(err),
					)
				}
				cfg.Metrics.SessionResolved(metrics.OutcomeDenied, 0)
				cfg.Fallback.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			id, ok, err := cfg.Sessions.Resolve(ctx, token)
			took := time.Since(start)

			switch {
			case err != nil:
				cfg.Logger.ErrorContext(ctx, "session store unavailable",
					logger.Component("session_guard"),
					logger.Path(r.URL.Path),
					logger.Error(err),
				)
				cfg.Metrics.SessionResolved(metrics.OutcomeUnavailable, took)
				cfg.Unavailable.ServeHTTP(w, r)
			case !ok:
				cfg.Metrics.SessionResolved(metrics.OutcomeDenied, took)
				cfg.Fallback.ServeHTTP(w, r)
			default:
				cfg.Metrics.SessionResolved(metrics.OutcomeAllowed, took)
				next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
			}
		})
	}
}

func errorHandler(e response.HTTPError) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Render(w, r, e)
	})
}
