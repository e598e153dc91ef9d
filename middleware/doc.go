// Package middleware provides the net/http middleware of the access layer.
//
// Access control runs in two tiers. Gate sits in front of every route and
// only checks that the session cookie is present: protected paths without it
// get the fallback response, identical whether the route exists or not.
// RequireSession and RequirePermissions run per route, verify the cookie
// against the session store and evaluate capabilities through the role graph.
// Store or database failures are answered with 503 and never treated as
// anonymous access.
//
// All middleware share the same shape:
//   - a Config struct with a Skip hook where it makes sense
//   - a discard logger and no metrics unless configured
//   - a panic at construction when a required dependency is missing
//
// # Wiring
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID())
//	r.Use(middleware.LoggingWithLogger(log))
//	r.Use(middleware.Gate(middleware.GateConfig{
//		CookieName:        "sid",
//		ProtectedPrefixes: []string{"/admin"},
//		Metrics:           collector,
//	}))
//
//	r.Route("/admin", func(r chi.Router) {
//		r.Use(middleware.RequireSession(middleware.SessionGuardConfig{
//			Sessions:   sessions,
//			Cookies:    cookies,
//			CookieName: "sid",
//		}))
//		r.With(middleware.RequirePermissions(
//			middleware.PermissionGuardConfig{Checker: resolver},
//			rbac.Resource("product"),
//		)).Get("/products/{id}", showProduct)
//	})
//
// Handlers decode client-visible identifiers with DecodeIDParam and read the
// caller with IdentityFromContext. SessionCookie issues and clears the cookie.
package middleware
