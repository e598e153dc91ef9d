package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/accesscore/core/health"
	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/response"
	"github.com/dmitrymomot/accesscore/middleware"
)

func isProbe(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/healthz/") || r.URL.Path == "/metrics"
}

func (a *App) routes() http.Handler {
	r := chi.NewRouter()
	r.NotFound(response.NotFound().ServeHTTP)
	r.MethodNotAllowed(response.MethodNotAllowed().ServeHTTP)

	r.Use(middleware.RequestID())
	r.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{
		Logger: a.logger,
		Skip:   isProbe,
	}))
	r.Use(middleware.Gate(middleware.GateConfig{
		CookieName:        a.config.SessionCookieName,
		ProtectedPrefixes: a.config.ProtectedPrefixes,
		Logger:            a.logger,
		Metrics:           a.metrics,
		Skip:              isProbe,
	}))

	r.Get("/healthz/live", health.Liveness())
	r.Get("/healthz/ready", health.Readiness(a.logger, a.config.ReadinessTimeout, a.checks...))
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Post("/logout", a.handleSignOut)
	if a.config.DevRoutes {
		r.Post("/dev/login", a.handleDevSignIn)
	}

	requireSession := middleware.RequireSession(middleware.SessionGuardConfig{
		Sessions:   a.sessions,
		Cookies:    a.cookies,
		CookieName: a.config.SessionCookieName,
		Logger:     a.logger,
		Metrics:    a.metrics,
	})
	guard := middleware.PermissionGuardConfig{
		Checker: a.resolver,
		Logger:  a.logger,
		Metrics: a.metrics,
	}
	can := func(req rbac.Requirement) func(http.Handler) http.Handler {
		return middleware.RequirePermissions(guard, req)
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/me", a.handleMe)
		r.With(can(rbac.Permissions("product.read"))).Get("/products/{id}", a.handleShowProduct)
		r.With(can(rbac.Permissions("product.update"))).Put("/products/{id}", a.handleUpdateProduct)
		r.With(can(rbac.Resource("product"))).Delete("/products/{id}", a.handleDeleteProduct)
	})

	return r
}
