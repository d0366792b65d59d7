package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/report"
	"github.com/chronos-hq/chronos-backend-go/internal/domain/team"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

// teamFetchConcurrency bounds the per-member fan-out.
const teamFetchConcurrency = 8

type ReportServiceImpl struct {
	events        attendance.EventRepository
	teams         team.TeamRepository
	clk           clock.Clock
	lateThreshold time.Duration
	logger        *slog.Logger
}

func NewReportService(
	events attendance.EventRepository,
	teams team.TeamRepository,
	clk clock.Clock,
	lateThreshold time.Duration,
	logger *slog.Logger,
) report.ReportService {
	return &ReportServiceImpl{
		events:        events,
		teams:         teams,
		clk:           clk,
		lateThreshold: lateThreshold,
		logger:        logger,
	}
}

type resolvedQuery struct {
	kind   PeriodKind
	window Window
	rule   LatenessRule
	opts   ShiftOptions
}

func (s *ReportServiceImpl) resolve(query report.StatsQuery) (resolvedQuery, error) {
	if err := query.Validate(); err != nil {
		return resolvedQuery{}, err
	}

	kind, err := ParsePeriodKind(query.Period)
	if err != nil {
		return resolvedQuery{}, err
	}

	ref := s.clk.Now()
	if query.Reference != "" {
		parsed, err := time.Parse(time.RFC3339, query.Reference)
		if err != nil {
			return resolvedQuery{}, fmt.Errorf("parse reference instant: %w", err)
		}
		ref = parsed
	}

	return resolvedQuery{
		kind:   kind,
		window: WindowFor(ref, kind),
		rule: LatenessRule{
			Threshold: s.lateThreshold,
			Tolerance: time.Duration(query.ToleranceMinutes) * time.Minute,
		},
		opts: ShiftOptions{
			IncludeOpen: query.IncludeOpenShift,
			Now:         s.clk.Now(),
		},
	}, nil
}

// MyStats implements report.ReportService.
func (s *ReportServiceImpl) MyStats(ctx context.Context, principal attendance.Principal, query report.StatsQuery) (report.UserStatsResponse, error) {
	return s.UserStats(ctx, principal.UserID, query)
}

// UserStats implements report.ReportService.
func (s *ReportServiceImpl) UserStats(ctx context.Context, userID string, query report.StatsQuery) (report.UserStatsResponse, error) {
	resolved, err := s.resolve(query)
	if err != nil {
		return report.UserStatsResponse{}, err
	}

	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return report.UserStatsResponse{}, fmt.Errorf("fetch events for user %s: %w", userID, err)
	}

	agg := AggregateUser(events, resolved.window, resolved.rule, resolved.opts)

	return report.UserStatsResponse{
		UserID:           userID,
		Period:           string(resolved.kind),
		WindowStart:      resolved.window.Start.Format(time.RFC3339),
		WindowEnd:        resolved.window.End.Format(time.RFC3339),
		TotalWorkedMs:    agg.TotalWorked.Milliseconds(),
		TotalWorkedHours: roundHours(agg.TotalWorked),
		ShiftCount:       agg.ShiftCount,
		LateCount:        agg.LateCount,
		LateMinutesTotal: agg.LateMinutes,
	}, nil
}

// TeamStats implements report.ReportService. Member fetches run
// concurrently; a failed fetch degrades that member to zero events
// with a logged warning instead of failing the whole aggregation.
func (s *ReportServiceImpl) TeamStats(ctx context.Context, teamID string, query report.StatsQuery) (report.TeamStatsResponse, error) {
	resolved, err := s.resolve(query)
	if err != nil {
		return report.TeamStatsResponse{}, err
	}

	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return report.TeamStatsResponse{}, fmt.Errorf("fetch team %s: %w", teamID, err)
	}

	memberIDs, err := s.teams.ListMemberIDs(ctx, teamID)
	if err != nil {
		return report.TeamStatsResponse{}, fmt.Errorf("list members of team %s: %w", teamID, err)
	}

	aggs := make([]UserAggregate, len(memberIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(teamFetchConcurrency)
	for i, userID := range memberIDs {
		i, userID := i, userID
		g.Go(func() error {
			events, err := s.events.ListByUser(gCtx, userID)
			if err != nil {
				s.logger.Warn("team aggregation: member fetch failed, counting zero events",
					slog.String("team_id", teamID),
					slog.String("user_id", userID),
					slog.Any("error", err),
				)
				events = nil
			}
			aggs[i] = AggregateUser(events, resolved.window, resolved.rule, resolved.opts)
			return nil
		})
	}
	// Per-member errors are absorbed above, so Wait has nothing to
	// propagate.
	_ = g.Wait()

	members := make(map[string]UserAggregate, len(memberIDs))
	for i, userID := range memberIDs {
		members[userID] = aggs[i]
	}

	merged := MergeTeam(members)

	return report.TeamStatsResponse{
		TeamID:               teamID,
		Period:               string(resolved.kind),
		WindowStart:          resolved.window.Start.Format(time.RFC3339),
		WindowEnd:            resolved.window.End.Format(time.RFC3339),
		MemberCount:          len(memberIDs),
		TotalWorkedMs:        merged.TotalWorked.Milliseconds(),
		TotalWorkedHours:     roundHours(merged.TotalWorked),
		LateCount:            merged.LateCount,
		LateMinutesTotal:     merged.LateMinutes,
		DaysWithData:         merged.DaysWithData,
		AvgPerDayPerPersonMs: merged.AvgPerDayPerPerson.Milliseconds(),
	}, nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
