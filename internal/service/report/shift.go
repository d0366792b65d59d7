package report

import (
	"sort"
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
)

// Shift is a reconstructed interval between a check-in and its
// matching check-out. Shifts are derived on demand and never stored.
type Shift struct {
	UserID   string
	Start    time.Time
	End      time.Time
	Open     bool
	Duration time.Duration
}

// ShiftOptions controls reconstruction. When IncludeOpen is set, a
// trailing unmatched check-in becomes an open shift ending at Now.
type ShiftOptions struct {
	IncludeOpen bool
	Now         time.Time
}

// ReconstructShifts turns a user's raw event set into ordered shifts.
// The input is not mutated; ordering is normalized internally, so the
// result is a pure function of the event set.
//
// The scan is deliberately tolerant of out-of-invariant data: a
// check-in while one is already pending replaces it, and a check-out
// with no pending check-in (or one that would produce a non-positive
// duration) is dropped. The recorder prevents such sequences for new
// writes, but historical data may contain them after manual edits.
func ReconstructShifts(events []attendance.Event, opts ShiftOptions) []Shift {
	sorted := make([]attendance.Event, 0, len(events))
	for _, ev := range events {
		if ev.CreatedAt.IsZero() {
			continue
		}
		sorted = append(sorted, ev)
	}
	// Ties on CreatedAt are broken by ID (UUIDv7, so insertion order),
	// keeping the result independent of input order.
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var shifts []Shift
	var pending *attendance.Event

	for i := range sorted {
		ev := sorted[i]
		switch ev.Type {
		case attendance.CheckIn:
			pending = &sorted[i]
		case attendance.CheckOut:
			if pending == nil {
				continue
			}
			if !ev.CreatedAt.After(pending.CreatedAt) {
				continue
			}
			shifts = append(shifts, Shift{
				UserID:   pending.UserID,
				Start:    pending.CreatedAt,
				End:      ev.CreatedAt,
				Duration: ev.CreatedAt.Sub(pending.CreatedAt),
			})
			pending = nil
		}
	}

	if pending != nil && opts.IncludeOpen && opts.Now.After(pending.CreatedAt) {
		shifts = append(shifts, Shift{
			UserID:   pending.UserID,
			Start:    pending.CreatedAt,
			End:      opts.Now,
			Open:     true,
			Duration: opts.Now.Sub(pending.CreatedAt),
		})
	}

	return shifts
}
