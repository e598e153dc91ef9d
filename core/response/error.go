package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/session"
	"github.com/dmitrymomot/accesscore/pkg/idcodec"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// Classify maps err to the generic HTTPError that may be shown to the client.
// A failed identifier decode is indistinguishable from a missing resource.
func Classify(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case err == nil:
		return ErrInternalServerError
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, idcodec.ErrDecode):
		return ErrNotFound
	case errors.Is(err, session.ErrStoreUnavailable):
		return ErrServiceUnavailable
	case errors.Is(err, rbac.ErrResolverUnavailable):
		return ErrServiceUnavailable
	case errors.Is(err, rbac.ErrPermissionDenied):
		return ErrForbidden
	}

	var sc statusCode
	if errors.As(err, &sc) {
		if base, ok := httpErrorsByStatus[sc.StatusCode()]; ok {
			return base
		}
	}
	return ErrInternalServerError
}

// Error renders err as a generic JSON error body.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	Render(w, r, Classify(err))
}

// Render writes e as the JSON error body with its status.
func Render(w http.ResponseWriter, _ *http.Request, e HTTPError) {
	_ = JSON(w, e.Status, e)
}

// NotFound is the generic not-found handler. Protected paths without a
// session get exactly this response whether or not the route exists.
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Render(w, r, ErrNotFound)
	})
}

// MethodNotAllowed is the generic 405 handler.
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Render(w, r, ErrMethodNotAllowed)
	})
}
