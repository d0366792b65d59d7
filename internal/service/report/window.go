package report

import (
	"fmt"
	"time"
)

// PeriodKind selects the calendar window statistics are computed over.
type PeriodKind string

const (
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(s) {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return PeriodKind(s), nil
	}
	return "", fmt.Errorf("unknown period kind %q", s)
}

// Window is a half-open interval [Start, End). Events at exactly End
// are outside the window; events at exactly Start are inside.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WindowFor computes the calendar window containing ref. Weeks run
// Monday 00:00 through the following Monday 00:00, months from the
// first of the month, years from January 1. Boundaries are taken in
// ref's location.
func WindowFor(ref time.Time, kind PeriodKind) Window {
	y, m, d := ref.Date()
	loc := ref.Location()

	switch kind {
	case PeriodWeek:
		// time.Weekday is Sunday-based; shift so Monday is day zero.
		sinceMonday := (int(ref.Weekday()) + 6) % 7
		start := time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}
	case PeriodMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}
	case PeriodYear:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}
	}

	// Unreachable for parsed kinds; fall back to the day of ref.
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}
