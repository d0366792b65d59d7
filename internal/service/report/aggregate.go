package report

import (
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
)

const dayKeyFormat = "2006-01-02"

// LatenessRule decides when a day's first check-in counts as late.
// Threshold and Tolerance are offsets from midnight and from the
// threshold respectively.
type LatenessRule struct {
	Threshold time.Duration
	Tolerance time.Duration
}

// LateArrival is one late day for one user.
type LateArrival struct {
	DayKey  string
	Minutes int
}

// UserAggregate is the per-user result the team facade merges from.
type UserAggregate struct {
	TotalWorked time.Duration
	ShiftCount  int
	LateCount   int
	LateMinutes int

	// WorkedByDay buckets closed (and optionally open) shift durations
	// by start day. A shift straddling a boundary is attributed
	// entirely to the day and window of its start.
	WorkedByDay map[string]time.Duration

	Late []LateArrival
}

// AggregateUser computes worked time and lateness for one user's
// events inside a window. Empty input yields zero values, not errors.
func AggregateUser(events []attendance.Event, window Window, rule LatenessRule, opts ShiftOptions) UserAggregate {
	agg := UserAggregate{WorkedByDay: make(map[string]time.Duration)}

	shifts := ReconstructShifts(events, opts)
	for _, shift := range shifts {
		if !window.Contains(shift.Start) {
			continue
		}
		day := shift.Start.Format(dayKeyFormat)
		agg.WorkedByDay[day] += shift.Duration
		agg.TotalWorked += shift.Duration
		agg.ShiftCount++
	}

	agg.Late = lateArrivals(events, window, rule)
	for _, late := range agg.Late {
		agg.LateCount++
		agg.LateMinutes += late.Minutes
	}

	return agg
}

// lateArrivals finds, for each calendar day, the user's first check-in
// and compares its time of day against the lateness rule. Days whose
// first check-in falls outside the window are skipped.
func lateArrivals(events []attendance.Event, window Window, rule LatenessRule) []LateArrival {
	firstByDay := make(map[string]time.Time)
	for _, ev := range events {
		if ev.Type != attendance.CheckIn || ev.CreatedAt.IsZero() {
			continue
		}
		day := ev.CreatedAt.Format(dayKeyFormat)
		if first, ok := firstByDay[day]; !ok || ev.CreatedAt.Before(first) {
			firstByDay[day] = ev.CreatedAt
		}
	}

	var late []LateArrival
	for day, first := range firstByDay {
		if !window.Contains(first) {
			continue
		}
		if minutes := latenessMinutes(first, rule); minutes > 0 {
			late = append(late, LateArrival{DayKey: day, Minutes: minutes})
		}
	}

	return late
}

// latenessMinutes returns how late a check-in is, in whole minutes, or
// zero when it is on time. The comparison is second-precise: a
// check-in exactly at threshold+tolerance is on time, one second past
// is late. The excess is rounded up, so that one second counts as one
// late minute.
func latenessMinutes(checkIn time.Time, rule LatenessRule) int {
	midnight := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	sinceMidnight := checkIn.Sub(midnight)

	excess := sinceMidnight - rule.Threshold - rule.Tolerance
	if excess <= 0 {
		return 0
	}
	return int((excess + time.Minute - 1) / time.Minute)
}

// TeamAggregate merges per-member aggregates. Worked-time averages are
// normalized per person per day; lateness stays a flat sum.
type TeamAggregate struct {
	TotalWorked time.Duration
	LateCount   int
	LateMinutes int

	DaysWithData       int
	AvgPerDayPerPerson time.Duration
}

// MergeTeam combines member aggregates keyed by user ID.
func MergeTeam(members map[string]UserAggregate) TeamAggregate {
	type dayBucket struct {
		worked time.Duration
		users  map[string]struct{}
	}

	days := make(map[string]*dayBucket)
	var merged TeamAggregate

	bucket := func(day string) *dayBucket {
		b, ok := days[day]
		if !ok {
			b = &dayBucket{users: make(map[string]struct{})}
			days[day] = b
		}
		return b
	}

	for userID, agg := range members {
		merged.TotalWorked += agg.TotalWorked
		merged.LateCount += agg.LateCount
		merged.LateMinutes += agg.LateMinutes

		for day, worked := range agg.WorkedByDay {
			b := bucket(day)
			b.worked += worked
			b.users[userID] = struct{}{}
		}
		for _, late := range agg.Late {
			// A late-only day still counts as a day with data.
			bucket(late.DayKey)
		}
	}

	merged.DaysWithData = len(days)
	if merged.DaysWithData == 0 {
		return merged
	}

	var perDayPerPerson time.Duration
	for _, b := range days {
		if len(b.users) == 0 {
			continue
		}
		perDayPerPerson += b.worked / time.Duration(len(b.users))
	}
	merged.AvgPerDayPerPerson = perDayPerPerson / time.Duration(merged.DaysWithData)

	return merged
}
