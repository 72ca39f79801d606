package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/services/session"
)

type contextKey string

const (
	claimsContextKey contextKey = "claims"
)

// Auth creates authentication middleware. The session is verified from the
// cookie or a Bearer token; nothing is read from storage.
func Auth(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := sessions.FromRequest(r)
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects sessions without the admin role. It must run after Auth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if !claims.IsAdmin {
				apierr.WriteError(w, apierr.NewForbiddenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaims returns the verified session claims from the request context
func GetClaims(ctx context.Context) *session.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*session.Claims)
	return claims
}

// MustGetClaims returns the verified session claims or panics
func MustGetClaims(ctx context.Context) *session.Claims {
	claims := GetClaims(ctx)
	if claims == nil {
		panic("no session claims in context - auth middleware not applied?")
	}
	return claims
}
