package middleware

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/accesscore/core/logger"
	"github.com/dmitrymomot/accesscore/core/session"
)

type identityContextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id session.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity stored by RequireSession.
func IdentityFromContext(ctx context.Context) (session.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(session.Identity)
	return id, ok
}

// LogExtractors returns logger context extractors for the request id and the
// resolved identity, for use with logger.WithContextExtractors.
func LogExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		func(ctx context.Context) (slog.Attr, bool) {
			id, ok := GetRequestID(ctx)
			if !ok {
				return slog.Attr{}, false
			}
			return logger.RequestID(id), true
		},
		func(ctx context.Context) (slog.Attr, bool) {
			id, ok := IdentityFromContext(ctx)
			if !ok {
				return slog.Attr{}, false
			}
			return logger.Group("identity",
				logger.SessionID(id.SessionID.String()),
				logger.UserID(id.UserID),
			), true
		},
	}
}
