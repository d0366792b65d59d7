package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/team"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

type fakeTeamRepo struct {
	managed map[string][]string
	err     error
}

func (f *fakeTeamRepo) GetByID(context.Context, string) (team.Team, error) {
	return team.Team{}, team.ErrTeamNotFound
}

func (f *fakeTeamRepo) ListMemberIDs(context.Context, string) ([]string, error) {
	return nil, nil
}

func (f *fakeTeamRepo) IsManagerOf(_ context.Context, managerID, userID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, id := range f.managed[managerID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func TestCanActFor(t *testing.T) {
	authorizer := NewAuthorizer(&fakeTeamRepo{
		managed: map[string][]string{"mgr": {"u1", "u2"}},
	})
	ctx := context.Background()

	tests := []struct {
		name      string
		principal attendance.Principal
		target    string
		wantErr   error
	}{
		{"member acts for self", attendance.Principal{UserID: "u1", Role: user.RoleMember}, "u1", nil},
		{"member acts for other", attendance.Principal{UserID: "u1", Role: user.RoleMember}, "u2", user.ErrForbidden},
		{"admin acts for anyone", attendance.Principal{UserID: "root", Role: user.RoleAdmin}, "u1", nil},
		{"manager acts for their member", attendance.Principal{UserID: "mgr", Role: user.RoleManager}, "u1", nil},
		{"manager acts for outsider", attendance.Principal{UserID: "mgr", Role: user.RoleManager}, "u9", user.ErrForbidden},
		{"manager acts for self", attendance.Principal{UserID: "mgr", Role: user.RoleManager}, "mgr", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizer.CanActFor(ctx, tt.principal, tt.target)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanActForTeamLookupFailure(t *testing.T) {
	authorizer := NewAuthorizer(&fakeTeamRepo{err: errors.New("connection reset")})

	err := authorizer.CanActFor(context.Background(),
		attendance.Principal{UserID: "mgr", Role: user.RoleManager}, "u1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrForbidden, "infrastructure failure is not a denial")
}
