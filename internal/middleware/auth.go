package middleware

import (
	"context"
	"net/http"

	"github.com/arnobm97/Trial-Project-backend/internal/auth"
	"github.com/arnobm97/Trial-Project-backend/internal/http/respond"
)

type contextKey struct{}

var identityKey contextKey

// Authenticate verifies the request's bearer token and injects the verified
// claims into the request context. Missing or invalid tokens end the request
// with a 401.
func Authenticate(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := tokens.Authenticate(r)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// Identity returns the verified claims stored by Authenticate.
func Identity(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*auth.Claims)
	return claims, ok
}
