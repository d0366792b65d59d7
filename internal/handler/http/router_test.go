package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/auth"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/report"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	routerTestSecret = "test-secret-key-for-jwt"
	testEventID      = "018e2f6a-1234-7abc-89ab-0123456789ab"
)

type stubAttendanceService struct {
	checkInErr  error
	checkOutErr error

	lastPrincipal attendance.Principal
	lastFilter    attendance.EventFilter
}

func (s *stubAttendanceService) CheckIn(_ context.Context, principal attendance.Principal, req attendance.CheckInRequest) (attendance.EventResponse, error) {
	s.lastPrincipal = principal
	if s.checkInErr != nil {
		return attendance.EventResponse{}, s.checkInErr
	}
	target := req.UserID
	if target == "" {
		target = principal.UserID
	}
	return attendance.EventResponse{ID: "ev-1", UserID: target, Type: string(attendance.CheckIn)}, nil
}

func (s *stubAttendanceService) CheckOut(_ context.Context, principal attendance.Principal, req attendance.CheckOutRequest) (attendance.EventResponse, error) {
	s.lastPrincipal = principal
	if s.checkOutErr != nil {
		return attendance.EventResponse{}, s.checkOutErr
	}
	return attendance.EventResponse{ID: "ev-2", UserID: principal.UserID, Type: string(attendance.CheckOut)}, nil
}

func (s *stubAttendanceService) Status(_ context.Context, principal attendance.Principal) (attendance.StatusResponse, error) {
	s.lastPrincipal = principal
	return attendance.StatusResponse{CheckedIn: true}, nil
}

func (s *stubAttendanceService) ListMyEvents(_ context.Context, principal attendance.Principal, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	s.lastPrincipal = principal
	filter.UserID = principal.UserID
	s.lastFilter = filter
	return attendance.ListEventsResponse{Page: 1, Limit: 20}, nil
}

func (s *stubAttendanceService) ListEvents(_ context.Context, filter attendance.EventFilter) (attendance.ListEventsResponse, error) {
	s.lastFilter = filter
	return attendance.ListEventsResponse{Page: 1, Limit: 20}, nil
}

func (s *stubAttendanceService) GetEvent(_ context.Context, id string) (attendance.EventResponse, error) {
	if id != testEventID {
		return attendance.EventResponse{}, attendance.ErrEventNotFound
	}
	return attendance.EventResponse{ID: id}, nil
}

func (s *stubAttendanceService) UpdateEvent(_ context.Context, req attendance.UpdateEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}
	return attendance.EventResponse{ID: req.ID}, nil
}

func (s *stubAttendanceService) DeleteEvent(context.Context, string) error {
	return nil
}

type stubReportService struct {
	lastQuery report.StatsQuery
}

func (s *stubReportService) MyStats(_ context.Context, principal attendance.Principal, query report.StatsQuery) (report.UserStatsResponse, error) {
	s.lastQuery = query
	return report.UserStatsResponse{UserID: principal.UserID, Period: query.Period}, nil
}

func (s *stubReportService) UserStats(_ context.Context, userID string, query report.StatsQuery) (report.UserStatsResponse, error) {
	s.lastQuery = query
	return report.UserStatsResponse{UserID: userID, Period: query.Period}, nil
}

func (s *stubReportService) TeamStats(_ context.Context, teamID string, query report.StatsQuery) (report.TeamStatsResponse, error) {
	s.lastQuery = query
	return report.TeamStatsResponse{TeamID: teamID, Period: query.Period}, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if req.Password != "password123" {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	return auth.TokenResponse{AccessToken: "token", RefreshToken: "refresh", UserID: "u1"}, nil
}

func (stubAuthService) Refresh(context.Context, string) (auth.TokenResponse, error) {
	return auth.TokenResponse{AccessToken: "token", RefreshToken: "refresh", UserID: "u1"}, nil
}

type routerFixture struct {
	router     http.Handler
	jwtService jwt.Service
	attendance *stubAttendanceService
	reports    *stubReportService
}

func newRouterFixture() *routerFixture {
	jwtService := jwt.NewJWTService(routerTestSecret, "1h", "24h")
	attendanceStub := &stubAttendanceService{}
	reportStub := &stubReportService{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(
		RouterConfig{Logger: logger, AllowedOrigins: []string{"*"}},
		jwtService,
		NewAuthHandler(jwtService, stubAuthService{}),
		NewAttendanceHandler(attendanceStub),
		NewReportHandler(reportStub),
	)

	return &routerFixture{
		router:     router,
		jwtService: jwtService,
		attendance: attendanceStub,
		reports:    reportStub,
	}
}

func (f *routerFixture) tokenFor(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := f.jwtService.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestLoginEndpoint(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "dev@example.com", "password": "password123"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "refresh_token=")

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
}

func TestLoginBadCredentials(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "dev@example.com", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckInRequiresToken(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckInWithEmptyBody(t *testing.T) {
	f := newRouterFixture()
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", f.attendance.lastPrincipal.UserID)
	assert.Equal(t, user.RoleMember, f.attendance.lastPrincipal.Role)
}

func TestCheckInConflictMapsTo409(t *testing.T) {
	f := newRouterFixture()
	f.attendance.checkInErr = attendance.ErrAlreadyCheckedIn
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
}

func TestCheckOutNoOpenShiftMapsTo409(t *testing.T) {
	f := newRouterFixture()
	f.attendance.checkOutErr = attendance.ErrNoOpenShift
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatusEndpoint(t *testing.T) {
	f := newRouterFixture()
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/status", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAttendanceRequiresManager(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/", f.tokenFor(t, "u1", user.RoleMember), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/attendance/", f.tokenFor(t, "mgr", user.RoleManager), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateAttendanceRequiresAdmin(t *testing.T) {
	f := newRouterFixture()
	body := map[string]string{"type": "check_out"}

	rec := f.do(t, http.MethodPut, "/api/v1/attendance/"+testEventID, f.tokenFor(t, "mgr", user.RoleManager), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1/attendance/"+testEventID, f.tokenFor(t, "root", user.RoleAdmin), body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAttendanceNotFound(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/missing", f.tokenFor(t, "mgr", user.RoleManager), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMyReportParsesQuery(t *testing.T) {
	f := newRouterFixture()
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodGet,
		"/api/v1/reports/me?period=week&tolerance_minutes=10&include_open_shift=true&reference=2024-03-13T00:00:00Z",
		token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "week", f.reports.lastQuery.Period)
	assert.Equal(t, 10, f.reports.lastQuery.ToleranceMinutes)
	assert.True(t, f.reports.lastQuery.IncludeOpenShift)
	assert.Equal(t, "2024-03-13T00:00:00Z", f.reports.lastQuery.Reference)
}

func TestMyReportRejectsMalformedQuery(t *testing.T) {
	f := newRouterFixture()
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodGet, "/api/v1/reports/me?period=week&tolerance_minutes=ten", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/me?period=week&include_open_shift=yes", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// strconv.ParseBool forms beyond the literal "true" are accepted.
	rec = f.do(t, http.MethodGet, "/api/v1/reports/me?period=week&include_open_shift=1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, f.reports.lastQuery.IncludeOpenShift)
}

func TestTeamReportRequiresManager(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/api/v1/reports/teams/t1?period=month", f.tokenFor(t, "u1", user.RoleMember), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/reports/teams/t1?period=month", f.tokenFor(t, "mgr", user.RoleManager), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListMyEventsForwardsPagination(t *testing.T) {
	f := newRouterFixture()
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/events?page=2&limit=5", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", f.attendance.lastFilter.UserID)
	assert.Equal(t, 2, f.attendance.lastFilter.Page)
	assert.Equal(t, 5, f.attendance.lastFilter.Limit)
}

func TestListMyEventsBadTimeFilter(t *testing.T) {
	f := newRouterFixture()
	token := f.tokenFor(t, "u1", user.RoleMember)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/events?from=yesterday", token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
