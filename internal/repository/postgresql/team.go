package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/team"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type teamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepository{db: db}
}

func teamDirErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, team.ErrDirectoryUnavailable)
}

// GetByID implements team.TeamRepository.
func (r *teamRepository) GetByID(ctx context.Context, id string) (team.Team, error) {
	query := `
		SELECT id, name, manager_id, created_at, updated_at
		FROM teams
		WHERE id = $1
	`

	var t team.Team
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.ManagerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, teamDirErr("get team", err)
	}

	return t, nil
}

// ListMemberIDs implements team.TeamRepository.
func (r *teamRepository) ListMemberIDs(ctx context.Context, teamID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM team_members
		WHERE team_id = $1
		ORDER BY joined_at
	`

	rows, err := r.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, teamDirErr("list team members", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, teamDirErr("scan team member", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, teamDirErr("list team members", err)
	}

	return ids, nil
}

// IsManagerOf implements team.TeamRepository.
func (r *teamRepository) IsManagerOf(ctx context.Context, managerID string, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM teams t
			JOIN team_members tm ON tm.team_id = t.id
			WHERE t.manager_id = $1
			  AND tm.user_id = $2
		)
	`

	var manages bool
	if err := r.db.QueryRow(ctx, query, managerID, userID).Scan(&manages); err != nil {
		return false, teamDirErr("check team manager", err)
	}

	return manages, nil
}
