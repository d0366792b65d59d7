package middleware

import (
	"net/http"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/chronos-hq/chronos-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func requireRole(denied error, allowed func(user.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, denied)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok || !allowed(user.Role(roleStr)) {
				response.HandleError(w, denied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin limits a route to admins.
var RequireAdmin = requireRole(user.ErrAdminAccessRequired, func(r user.Role) bool {
	return r == user.RoleAdmin
})

// RequireManager limits a route to managers and admins.
var RequireManager = requireRole(user.ErrManagerAccessRequired, func(r user.Role) bool {
	return r == user.RoleManager || r == user.RoleAdmin
})
