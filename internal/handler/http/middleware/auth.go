package middleware

import (
	"net/http"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/auth"
	"github.com/chronos-hq/chronos-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests whose context holds no valid access
// token. Runs after jwtauth.Verifier, which parses the Authorization
// header into the context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Refresh tokens are only good for the refresh endpoint.
			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
