// Package cookie provides the shopper session cookie helpers.
// Handlers and middleware should go through this package so the cookie's
// name, scope and security flags stay consistent.
package cookie

import (
	"net/http"
	"time"
)

// SessionCookieName holds the shopper's session token.
const SessionCookieName = "gamestore_session"

// Config holds cookie configuration.
type Config struct {
	// Domain scopes the cookie. Empty means host-only, which is what
	// localhost development needs.
	Domain string

	// Secure determines whether cookies require HTTPS.
	// Should be true in production, false in development.
	Secure bool

	// MaxAge is the session cookie lifetime. Zero makes it a browser-session cookie.
	MaxAge time.Duration
}

// NewConfig creates a new cookie configuration.
//
// Example:
//
//	cfg := cookie.NewConfig("gamestore.ru", true, 24*time.Hour) // production
//	cfg := cookie.NewConfig("", false, 24*time.Hour)            // development
func NewConfig(domain string, secure bool, maxAge time.Duration) *Config {
	return &Config{
		Domain: domain,
		Secure: secure,
		MaxAge: maxAge,
	}
}

// SetSession writes the session cookie.
//
// The cookie is set with:
//   - Path: "/" (available on all paths)
//   - HttpOnly: true (not accessible via JavaScript)
//   - SameSite: Lax (sent on top-level navigations, so POST-redirect-GET works)
//   - Secure: based on config
func (c *Config) SetSession(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   int(c.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession removes the session cookie. Domain and Path must match
// the values used by SetSession.
func (c *Config) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Domain:   c.Domain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get retrieves a cookie value from the request.
// Returns empty string if cookie not found.
func Get(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetSession returns the session token, or empty.
func GetSession(r *http.Request) string {
	return Get(r, SessionCookieName)
}
