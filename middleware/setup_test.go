package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/core/cookie"
	"github.com/dmitrymomot/accesscore/core/rbac"
	"github.com/dmitrymomot/accesscore/core/session"
)

const (
	cookieName = "sid"
	testSecret = "0123456789abcdef0123456789abcdef"
)

var errBackendDown = errors.New("backend down")

type stack struct {
	sessions *session.Manager
	store    *session.MemoryStore
	cookies  *cookie.Manager
	repo     *rbac.MemoryRepository
	resolver *rbac.Resolver
}

func newStack(t *testing.T) *stack {
	t.Helper()

	store := session.NewMemoryStore()
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	repo := rbac.NewMemoryRepository()
	require.NoError(t, repo.Grant("catalog_admin", "product.read", "product.create", "product.update", "product.delete"))
	require.NoError(t, repo.Grant("viewer", "product.read"))

	return &stack{
		sessions: session.NewManager(store, session.WithTTL(time.Hour)),
		store:    store,
		cookies:  cookies,
		repo:     repo,
		resolver: rbac.NewResolver(repo),
	}
}

// signedCookie creates a session for userID and returns the cookie a browser
// would send back.
func (s *stack) signedCookie(t *testing.T, userID int64) *http.Cookie {
	t.Helper()

	sess, err := s.sessions.Create(context.Background(), userID)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, s.cookies.Write(rec, cookieName, sess.Token))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// okHandler records whether it ran.
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (session.Identity, bool, error) {
	return session.Identity{}, false, errors.Join(session.ErrStoreUnavailable, errBackendDown)
}

type failingChecker struct{}

func (failingChecker) HasPermissions(context.Context, int64, rbac.Requirement) (bool, error) {
	return false, errors.Join(rbac.ErrResolverUnavailable, errBackendDown)
}
