package http

import (
	"context"
	"fmt"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// principalFromContext resolves the authenticated caller from JWT
// claims placed in the context by the auth middleware.
func principalFromContext(ctx context.Context) (attendance.Principal, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.Principal{}, fmt.Errorf("extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return attendance.Principal{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	role := user.Role(roleStr)
	if !ok || !role.IsValid() {
		return attendance.Principal{}, fmt.Errorf("role claim is missing or invalid")
	}

	return attendance.Principal{UserID: userID, Role: role}, nil
}
