package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/songguessr/songguessr-go/internal/api/apierr"
	"github.com/songguessr/songguessr-go/internal/services/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Auth creates the authorization gate. Every request has its bearer
// credential resolved; the policy table decides whether a missing
// identity is a 401 or just an anonymous request. Resolution failing
// open (bad/expired token) is indistinguishable from no token.
func Auth(authService *auth.Service, policy *Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authService.Resolve(r.Context(), extractToken(r))
			if err != nil {
				apierr.WriteError(w, apierr.NewInternalError())
				return
			}

			if identity == nil {
				if policy.RequiresIdentity(r.Method, r.URL.Path) {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer credential from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetIdentity returns the resolved identity, or nil for anonymous requests
func GetIdentity(ctx context.Context) *auth.Identity {
	identity, _ := ctx.Value(identityContextKey).(*auth.Identity)
	return identity
}

// MustGetIdentity returns the resolved identity or panics
func MustGetIdentity(ctx context.Context) *auth.Identity {
	identity := GetIdentity(ctx)
	if identity == nil {
		panic("no identity in context - route missing from auth policy?")
	}
	return identity
}
