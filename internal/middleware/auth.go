package middleware

import (
	"context"
	"net/http"

	"github.com/vancomm/minesweeper-hint/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
	CtxLogger
)

// PlayerClaims returns the claims Auth put in ctx, if any.
func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}

// Auth attaches the caller's claims to the request context. Requests without
// valid cookies pass through anonymously.
func Auth(cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
