// Package auth resolves the requesting client principal from a bearer JWT.
// Token issuance lives in the identity service; this side only verifies.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type clientIDKey struct{}

// ClientID returns the authenticated client id stored by RequireClient, or
// an empty string when the request was not authenticated.
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}

// WithClientID returns a context carrying the given client id. Exported for
// handler tests that bypass the middleware.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey{}, id)
}

// RequireClient verifies the Authorization bearer token with the shared
// secret and admits only principals with the client role. The token must
// carry the client id in the sub claim.
func RequireClient(secret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			unauthorized(w)
			return
		}
		raw = strings.TrimPrefix(raw, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			unauthorized(w)
			return
		}

		role, _ := claims["role"].(string)
		if role != "client" {
			unauthorized(w)
			return
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), sub)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","code":"unauthorized"}`))
}
