package middleware

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/metrics"
	"github.com/dmitrymomot/accesscore/core/response"
	"github.com/dmitrymomot/accesscore/pkg/clientip"
)

// DefaultOriginalPathHeader carries the original request URI to downstream handlers.
const DefaultOriginalPathHeader = "X-Original-Path"

// GateConfig configures the request gate.
type GateConfig struct {
	// CookieName is the session cookie checked for presence (required).
	CookieName string
	// ProtectedPrefixes are path prefixes matched on segment boundaries.
	ProtectedPrefixes []string
	// OriginalPathHeader is set to the request URI when a cookie is present
	// (default: "X-Original-Path"). Client-supplied values are always removed.
	OriginalPathHeader string
	// Fallback answers protected requests without a cookie (default: generic 404).
	Fallback http.Handler
	// Skip bypasses the gate for specific requests. The header is still stripped.
	Skip func(r *http.Request) bool
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// Metrics records one decision per request (optional)
	Metrics *metrics.Collector
}

// Gate is the cheap first tier of access control. It looks only at whether
// the session cookie is present, never at the store: protected paths without
// a cookie get the fallback response, identical for routes that exist and
// routes that do not, and the protected handler is never invoked. A present
// cookie proves nothing; handlers must still run RequireSession.
func Gate(cfg GateConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		panic("gate middleware: cookie name is required")
	}
	if cfg.OriginalPathHeader == "" {
		cfg.OriginalPathHeader = DefaultOriginalPathHeader
	}
	if cfg.Fallback == nil {
		cfg.Fallback = response.NotFound()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	prefixes := normalizePrefixes(cfg.ProtectedPrefixes)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(cfg.OriginalPathHeader)

			if cfg.Skip != nil && cfg.Skip(r) {
				cfg.Metrics.GateDecision(metrics.GateSkipped)
				next.ServeHTTP(w, r)
				return
			}

			if hasCookie(r, cfg.CookieName) {
				r.Header.Set(cfg.OriginalPathHeader, r.URL.RequestURI())
				cfg.Metrics.GateDecision(metrics.GateForwarded)
				next.ServeHTTP(w, r)
				return
			}

			if isProtected(r, prefixes) {
				cfg.Logger.DebugContext(r.Context(), "gate rejected request without session cookie",
					logger.Component("gate"),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(clientip.GetIP(r)),
				)
				cfg.Metrics.GateDecision(metrics.GateRejected)
				cfg.Fallback.ServeHTTP(w, r)
				return
			}

			cfg.Metrics.GateDecision(metrics.GatePassed)
			next.ServeHTTP(w, r)
		})
	}
}

func hasCookie(r *http.Request, name string) bool {
	c, err := r.Cookie(name)
	return err == nil && c.Value != ""
}

func normalizePrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		p = path.Clean("/" + p)
		out = append(out, p)
	}
	return out
}

// isProtected matches on path segments: "/admin" covers "/admin" and
// "/admin/x" but not "/administrator". Both the cleaned path and the raw path
// a router dispatches on are checked, and any dot segment is treated as
// protected, so "/admin/../x" cannot slip past a prefix.
func isProtected(r *http.Request, prefixes []string) bool {
	if len(prefixes) == 0 {
		return false
	}
	raw := r.URL.RawPath
	if raw == "" {
		raw = r.URL.Path
	}
	if hasDotSegment(raw) || hasDotSegment(r.URL.Path) {
		return true
	}
	return underPrefix(path.Clean("/"+r.URL.Path), prefixes) || underPrefix(raw, prefixes)
}

func underPrefix(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "/" || p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func hasDotSegment(p string) bool {
	for seg := range strings.SplitSeq(p, "/") {
		if seg == "." || seg == ".." {
			return true
		}
	}
	return false
}
