package middleware

import (
	"net/http"

	"github.com/dukerupert/gamestore/internal/cookie"
	"github.com/dukerupert/gamestore/internal/domain"
)

// Session copies the session cookie into the request context so handlers
// and loggers can reach it with domain.SessionTokenFromContext.
// It never creates sessions; mutating handlers do that on demand.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := cookie.GetSession(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := domain.NewContextWithSessionToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
