package report

import (
	"context"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
)

// ReportService computes worked-time and lateness statistics. All
// results are derived from the event ledger on every call; nothing is
// cached or persisted.
type ReportService interface {
	// MyStats aggregates the principal's own events
	MyStats(ctx context.Context, principal attendance.Principal, query StatsQuery) (UserStatsResponse, error)

	// UserStats aggregates one user's events (manager/admin)
	UserStats(ctx context.Context, userID string, query StatsQuery) (UserStatsResponse, error)

	// TeamStats fans out over a team's members and merges the results.
	// A failed fetch for one member degrades to zero events for that
	// member; it never fails the whole call.
	TeamStats(ctx context.Context, teamID string, query StatsQuery) (TeamStatsResponse, error)
}
