package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/clubroster/internal/services/session"
	"github.com/mcoot/clubroster/internal/web/gate"
)

type contextKey string

const (
	claimsContextKey contextKey = "claims"
)

// GetClaims retrieves the verified session claims from the request context.
// Returns nil if the request has no valid session.
func GetClaims(ctx context.Context) *session.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*session.Claims)
	return claims
}

// Gate returns middleware that applies the request gate to every request.
// It only reads the session cookie and either redirects or passes through.
func Gate(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFromCookie(r, sessions)

			decision := gate.Decide(r.URL.Path, claims)
			if decision.Action == gate.Redirect {
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromCookie(r *http.Request, sessions *session.Service) *session.Claims {
	cookie, err := r.Cookie(sessions.CookieName())
	if err != nil {
		return nil
	}

	claims, ok := sessions.Verify(cookie.Value)
	if !ok {
		return nil
	}
	return claims
}
