package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/accesscore/core/cookie"
	"github.com/dmitrymomot/accesscore/core/session"
)

// SessionIssuer creates and destroys sessions. *session.Manager implements it.
type SessionIssuer interface {
	Create(ctx context.Context, userID int64) (session.Session, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

// SessionCookie binds session lifecycle to the HTTP-only session cookie.
type SessionCookie struct {
	Sessions SessionIssuer
	Cookies  *cookie.Manager
	Name     string
}

// SignIn creates a session for userID and writes its token to the cookie.
// A session already carried by the request is destroyed first.
func (s SessionCookie) SignIn(w http.ResponseWriter, r *http.Request, userID int64) (session.Session, error) {
	ctx := r.Context()

	if old, err := s.Cookies.Read(r, s.Name); err == nil {
		if err := s.Sessions.Destroy(ctx, old); err != nil {
			return session.Session{}, err
		}
	}

	sess, err := s.Sessions.Create(ctx, userID)
	if err != nil {
		return session.Session{}, err
	}

	maxAge := int(s.Sessions.TTL() / time.Second)
	if err := s.Cookies.Write(w, s.Name, sess.Token, cookie.WithMaxAge(maxAge), cookie.WithHTTPOnly(true)); err != nil {
		_ = s.Sessions.Destroy(context.WithoutCancel(ctx), sess.Token)
		return session.Session{}, err
	}
	return sess, nil
}

// SignOut destroys the request's session and clears the cookie. The cookie
// is cleared even when the store delete fails.
func (s SessionCookie) SignOut(w http.ResponseWriter, r *http.Request) error {
	defer s.Cookies.Delete(w, s.Name)

	token, err := s.Cookies.Read(r, s.Name)
	if err != nil {
		// missing or forged cookie: nothing to destroy
		return nil
	}
	return s.Sessions.Destroy(r.Context(), token)
}
