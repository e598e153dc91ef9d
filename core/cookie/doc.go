// Package cookie writes and reads HTTP cookies with secure defaults
// (HttpOnly, SameSite=Lax, Path=/) and optional HMAC-SHA256 signing.
//
// # Basic Usage
//
//	manager, err := cookie.New(nil)
//	err = manager.Set(w, "theme", "dark", cookie.WithMaxAge(3600))
//	value, err := manager.Get(r, "theme")
//	manager.Delete(w, "theme")
//
// # Signed Cookies
//
// With one or more secrets of at least 32 characters the manager can sign
// values. The first secret signs; every secret verifies, so secrets can be
// rotated by prepending the new one:
//
//	manager, err := cookie.New([]string{newSecret, oldSecret})
//	err = manager.SetSigned(w, "__session", token)
//	token, err := manager.GetSigned(r, "__session")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// tampered or signed with a retired secret
//	}
//
// Write and Read pick signed or plain storage depending on whether secrets
// are configured. The session cookie goes through them.
//
// # Configuration
//
//	type Config struct {
//		Secrets  string        `env:"COOKIE_SECRETS" envDefault:""`
//		Path     string        `env:"COOKIE_PATH" envDefault:"/"`
//		Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
//		Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
//		HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
//		SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"`
//		MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
//	}
//
// COOKIE_SECRETS is a comma-separated list.
//
// # Errors
//
//   - ErrCookieNotFound: cookie absent or empty
//   - ErrInvalidSignature: signature does not match any secret
//   - ErrInvalidFormat: signed value is malformed
//   - ErrNoSecret: signed operation without secrets
//   - ErrSecretTooShort: secret shorter than 32 characters
//   - ErrCookieTooLarge: serialized cookie exceeds the size limit
package cookie
