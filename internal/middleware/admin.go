package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/trn-gabru/lafabrica/internal/auth"
	"github.com/trn-gabru/lafabrica/internal/transport"
)

type identityKey struct{}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is missing or malformed.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AdminAuth gates mutating routes. It accepts either a valid bearer token or,
// as an operational escape hatch, the static X-Admin-Key header. The verified
// identity is placed in the request context; downstream code never sees the
// raw token.
func AdminAuth(adminKey string, manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			if adminKey != "" {
				if key := r.Header.Get("X-Admin-Key"); key != "" &&
					subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1 {
					ctx := context.WithValue(r.Context(), identityKey{}, auth.Identity{Username: "api-key"})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			if manager != nil {
				if token := BearerToken(r); token != "" {
					identity, err := manager.Verify(token)
					if err == nil {
						ctx := context.WithValue(r.Context(), identityKey{}, identity)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}

func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	if v := ctx.Value(identityKey{}); v != nil {
		if id, ok := v.(auth.Identity); ok {
			return id, true
		}
	}
	return auth.Identity{}, false
}
