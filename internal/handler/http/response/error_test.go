package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/auth"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/team"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var envelope Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec.Code, envelope
}

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict},
		{"no open shift", attendance.ErrNoOpenShift, http.StatusConflict},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict},
		{"forbidden", user.ErrForbidden, http.StatusForbidden},
		{"admin required", user.ErrAdminAccessRequired, http.StatusForbidden},
		{"event not found", attendance.ErrEventNotFound, http.StatusNotFound},
		{"team not found", team.ErrTeamNotFound, http.StatusNotFound},
		{"user not found", user.ErrUserNotFound, http.StatusNotFound},
		{"ledger unavailable", attendance.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"user directory unavailable", user.ErrDirectoryUnavailable, http.StatusServiceUnavailable},
		{"team directory unavailable", team.ErrDirectoryUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, envelope := handle(t, tt.err)
			assert.Equal(t, tt.want, code)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
		})
	}
}

func TestHandleErrorSeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetch team t1: %v: %w", errors.New("dial tcp: refused"), team.ErrDirectoryUnavailable)

	code, envelope := handle(t, wrapped)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Directory unavailable", envelope.Error.Message)
}

// Directory failures and ledger failures both answer 503 but must not
// share messaging; clients surface them differently.
func TestHandleErrorDistinguishesLedgerFromDirectory(t *testing.T) {
	_, ledger := handle(t, attendance.ErrStoreUnavailable)
	_, directory := handle(t, user.ErrDirectoryUnavailable)

	assert.Equal(t, "Attendance store unavailable", ledger.Error.Message)
	assert.Equal(t, "Directory unavailable", directory.Error.Message)
	assert.NotEqual(t, ledger.Error.Message, directory.Error.Message)
}

func TestHandleErrorValidationErrors(t *testing.T) {
	verrs := validator.ValidationErrors{
		{Field: "period", Message: "period must be week, month or year"},
	}

	code, envelope := handle(t, verrs)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "period must be week, month or year", envelope.Error.Details["period"])
}
