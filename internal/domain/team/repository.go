package team

import (
	"context"
)

type TeamRepository interface {
	GetByID(ctx context.Context, id string) (Team, error)

	// ListMemberIDs returns the user IDs belonging to a team.
	ListMemberIDs(ctx context.Context, teamID string) ([]string, error)

	// IsManagerOf reports whether managerID manages a team that userID belongs to.
	IsManagerOf(ctx context.Context, managerID string, userID string) (bool, error)
}
