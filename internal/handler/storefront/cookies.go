package storefront

import (
	"net/http"

	"github.com/dukerupert/gamestore/internal/cookie"
	"github.com/dukerupert/gamestore/internal/domain"
)

// sessionIssuer resolves the shopper's session for mutating requests and
// issues a cookie when the session had to be (re)created.
type sessionIssuer struct {
	cartService domain.CartService
	cookies     *cookie.Config
}

// ensure returns a live session token, creating one when the request has
// none or carries an expired one.
func (s sessionIssuer) ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	current := currentSession(r)

	token, err := s.cartService.GetOrCreateSession(r.Context(), current)
	if err != nil {
		return "", err
	}
	if token != current {
		s.cookies.SetSession(w, token)
	}
	return token, nil
}

// currentSession prefers the token placed in context by the session
// middleware and falls back to the raw cookie.
func currentSession(r *http.Request) string {
	if token := domain.SessionTokenFromContext(r.Context()); token != "" {
		return token
	}
	return cookie.GetSession(r)
}
