package chi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/savora-cloud/savora/internal/domain/restaurant"
)

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type userCtxKey struct{}

// UserFromContext returns the caller identity stored by JWTAuthMiddleware.
func UserFromContext(ctx context.Context) (restaurant.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(restaurant.User)
	return u, ok
}

// ContextWithUser stores a caller identity in the context (tests).
func ContextWithUser(ctx context.Context, u restaurant.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// JWTAuthMiddleware returns a middleware that validates HS256 Bearer tokens
// and stores the caller identity in the request context. If secret is empty,
// authentication is disabled (pass-through).
func JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		// Auth disabled — pass everything through
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			user, err := userFromToken(auth[len(bearerPrefix):], secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

// userFromToken verifies the token signature and maps the standard identity
// claims onto the domain user. Only the subject is mandatory.
func userFromToken(raw, secret string) (restaurant.User, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return restaurant.User{}, fmt.Errorf("parse token: %w", err)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return restaurant.User{}, fmt.Errorf("token has no subject")
	}
	username, _ := claims["preferred_username"].(string)
	givenName, _ := claims["given_name"].(string)
	familyName, _ := claims["family_name"].(string)

	return restaurant.User{
		ID:         sub,
		Username:   username,
		GivenName:  givenName,
		FamilyName: familyName,
	}, nil
}
