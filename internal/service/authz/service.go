package authz

import (
	"context"
	"fmt"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/team"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
)

type roleAuthorizer struct {
	teams team.TeamRepository
}

// NewAuthorizer returns the role-based authorizer: everyone may act
// for themselves, admins for anyone, managers for members of teams
// they manage. Everything else is denied.
func NewAuthorizer(teams team.TeamRepository) attendance.Authorizer {
	return &roleAuthorizer{teams: teams}
}

// CanActFor implements attendance.Authorizer.
func (a *roleAuthorizer) CanActFor(ctx context.Context, principal attendance.Principal, targetUserID string) error {
	if principal.UserID == targetUserID {
		return nil
	}

	switch principal.Role {
	case user.RoleAdmin:
		return nil
	case user.RoleManager:
		manages, err := a.teams.IsManagerOf(ctx, principal.UserID, targetUserID)
		if err != nil {
			return fmt.Errorf("check team management: %w", err)
		}
		if !manages {
			return user.ErrForbidden
		}
		return nil
	default:
		return user.ErrForbidden
	}
}
