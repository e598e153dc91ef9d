package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/metrics"
	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/response"
)

// PermissionChecker evaluates a requirement. *rbac.Resolver implements it.
type PermissionChecker interface {
	HasPermissions(ctx context.Context, userID int64, req rbac.Requirement) (bool, error)
}

// PermissionGuardConfig configures RequirePermissions.
type PermissionGuardConfig struct {
	// Checker evaluates requirements (required).
	Checker PermissionChecker
	// Fallback answers requests that reach the guard without an identity (default: generic 404).
	Fallback http.Handler
	// Forbidden answers authenticated requests lacking a capability (default: generic 403).
	Forbidden http.Handler
	// Unavailable answers when the role graph cannot be read (default: generic 503).
	Unavailable http.Handler
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// Metrics records one outcome per check (optional)
	Metrics *metrics.Collector
}

// RequirePermissions allows the request only when the identity placed by
// RequireSession holds every capability of req. An empty requirement always
// denies.
func RequirePermissions(cfg PermissionGuardConfig, req rbac.Requirement) func(http.Handler) http.Handler {
	if cfg.Checker == nil {
		panic("permission guard: checker is required")
	}
	if cfg.Fallback == nil {
		cfg.Fallback = response.NotFound()
	}
	if cfg.Forbidden == nil {
		cfg.Forbidden = errorHandler(response.ErrForbidden)
	}
	if cfg.Unavailable == nil {
		cfg.Unavailable = errorHandler(response.ErrServiceUnavailable)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	names := req.Expand()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, ok := IdentityFromContext(ctx)
			if !ok {
				cfg.Metrics.PermissionChecked(metrics.OutcomeDenied)
				cfg.Fallback.ServeHTTP(w, r)
				return
			}

			allowed, err := cfg.Checker.HasPermissions(ctx, id.UserID, req)
			switch {
			case err != nil:
				cfg.Logger.ErrorContext(ctx, "permission check failed",
					logger.Component("permission_guard"),
					logger.UserID(id.UserID),
					logger.Permissions(names),
					logger.Error(err),
				)
				cfg.Metrics.PermissionChecked(metrics.OutcomeUnavailable)
				cfg.Unavailable.ServeHTTP(w, r)
			case !allowed:
				cfg.Logger.InfoContext(ctx, "permission denied",
					logger.Component("permission_guard"),
					logger.UserID(id.UserID),
					logger.Permissions(names),
					logger.Path(r.URL.Path),
				)
				cfg.Metrics.PermissionChecked(metrics.OutcomeDenied)
				cfg.Forbidden.ServeHTTP(w, r)
			default:
				cfg.Metrics.PermissionChecked(metrics.OutcomeAllowed)
				next.ServeHTTP(w, r)
			}
		})
	}
}
