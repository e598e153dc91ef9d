package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesscore/core/cookie"
)

const testSecret = "test-secret-key-32-characters!!!"
const testSecret2 = "another-secret-key-32-chars!!!!!"

// requestWith returns a request carrying every cookie set on w.
func requestWith(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_BasicOperations(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "test", "value123"))

		value, err := m.Get(requestWith(w), "test")
		require.NoError(t, err)
		assert.Equal(t, "value123", value)
	})

	t.Run("secure defaults", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "test", "v"))

		c := w.Result().Cookies()[0]
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, "/", c.Path)
	})

	t.Run("cookie not found", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(nil)
		require.NoError(t, err)

		_, err = m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("empty value counts as absent", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(nil)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "empty", Value: ""})
		_, err = m.Get(r, "empty")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("delete cookie", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(nil)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		m.Delete(w, "test")

		c := w.Result().Cookies()[0]
		assert.Equal(t, "test", c.Name)
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	})
}

func TestManager_SignedCookies(t *testing.T) {
	t.Parallel()

	t.Run("set and get signed cookie", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "signed", "hello|world"))
		assert.NotContains(t, w.Result().Cookies()[0].Value, "hello")

		value, err := m.GetSigned(requestWith(w), "signed")
		require.NoError(t, err)
		assert.Equal(t, "hello|world", value)
	})

	t.Run("detect tampering", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New([]string{testSecret})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "signed", "original"))
		orig := w.Result().Cookies()[0].Value

		payload, sig, ok := strings.Cut(orig, ".")
		require.True(t, ok)

		forged := httptest.NewRequest(http.MethodGet, "/", nil)
		forged.AddCookie(&http.Cookie{Name: "signed", Value: "ZXZpbA." + sig})
		_, err = m.GetSigned(forged, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)

		noSep := httptest.NewRequest(http.MethodGet, "/", nil)
		noSep.AddCookie(&http.Cookie{Name: "signed", Value: payload})
		_, err = m.GetSigned(noSep, "signed")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})

	t.Run("signing requires a secret", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.New(nil)
		require.NoError(t, err)

		assert.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "x", "y"), cookie.ErrNoSecret)
		_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "x")
		assert.ErrorIs(t, err, cookie.ErrNoSecret)
	})
}

func TestManager_KeyRotation(t *testing.T) {
	t.Parallel()

	old, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, old.SetSigned(w, "signed", "rotating"))

	rotated, err := cookie.New([]string{testSecret2, testSecret})
	require.NoError(t, err)
	value, err := rotated.GetSigned(requestWith(w), "signed")
	require.NoError(t, err)
	assert.Equal(t, "rotating", value)

	retired, err := cookie.New([]string{testSecret2})
	require.NoError(t, err)
	_, err = retired.GetSigned(requestWith(w), "signed")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_WriteRead(t *testing.T) {
	t.Parallel()

	for name, secrets := range map[string][]string{"plain": nil, "signed": {testSecret}} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(secrets)
			require.NoError(t, err)
			assert.Equal(t, len(secrets) > 0, m.Signing())

			w := httptest.NewRecorder()
			require.NoError(t, m.Write(w, "__session", "token-value"))

			value, err := m.Read(requestWith(w), "__session")
			require.NoError(t, err)
			assert.Equal(t, "token-value", value)
		})
	}
}

func TestManager_SizeLimit(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{MaxSize: 100})
	require.NoError(t, err)

	err = m.Set(httptest.NewRecorder(), "big", strings.Repeat("x", 200))
	var tooLarge cookie.ErrCookieTooLarge
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "big", tooLarge.Name)
	assert.Equal(t, 100, tooLarge.Max)

	assert.NoError(t, m.Set(httptest.NewRecorder(), "small", "x"))
}

func TestManager_Options(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(nil, cookie.WithSecure(true), cookie.WithDomain("example.com"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.Set(w, "opt", "v",
		cookie.WithMaxAge(60),
		cookie.WithPath("/admin"),
		cookie.WithSameSite(http.SameSiteStrictMode),
		cookie.WithHTTPOnly(false),
	))

	c := w.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 60, c.MaxAge)
	assert.Equal(t, "/admin", c.Path)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.False(t, c.HttpOnly)

	// per-cookie options do not leak into defaults
	w = httptest.NewRecorder()
	require.NoError(t, m.Set(w, "next", "v"))
	c = w.Result().Cookies()[0]
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
}

func TestManager_Validation(t *testing.T) {
	t.Parallel()

	_, err := cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{"", ""})
	require.NoError(t, err)
	assert.False(t, m.Signing())
}

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("parse comma-separated secrets", func(t *testing.T) {
		t.Parallel()
		m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + testSecret + " ,," + testSecret2})
		require.NoError(t, err)
		assert.True(t, m.Signing())
	})

	t.Run("default config", func(t *testing.T) {
		t.Parallel()
		cfg := cookie.DefaultConfig()
		assert.Equal(t, "/", cfg.Path)
		assert.True(t, cfg.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cfg.SameSite)
		assert.Equal(t, cookie.MaxCookieSize, cfg.MaxSize)

		m, err := cookie.NewFromConfig(cfg)
		require.NoError(t, err)
		assert.False(t, m.Signing())
	})
}
