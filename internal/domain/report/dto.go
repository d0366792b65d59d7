package report

import (
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/validator"
)

// StatsQuery carries the aggregation parameters shared by the
// per-user and per-team endpoints.
type StatsQuery struct {
	// Period is week, month or year.
	Period string
	// Reference is an optional RFC 3339 instant the window is computed
	// from; empty means "now".
	Reference string
	// ToleranceMinutes is the lateness grace period.
	ToleranceMinutes int
	// IncludeOpenShift counts an unterminated shift up to now.
	IncludeOpenShift bool
}

func (q *StatsQuery) Validate() error {
	var errs validator.ValidationErrors

	switch q.Period {
	case "week", "month", "year":
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be week, month or year",
		})
	}

	if q.Reference != "" {
		if _, ok := validator.IsValidTimestamp(q.Reference); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "reference",
				Message: "reference must be an RFC 3339 timestamp",
			})
		}
	}

	if q.ToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerance_minutes",
			Message: "tolerance_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserStatsResponse summarizes one user's worked time and lateness
// inside a period window.
type UserStatsResponse struct {
	UserID           string  `json:"user_id"`
	Period           string  `json:"period"`
	WindowStart      string  `json:"window_start"`
	WindowEnd        string  `json:"window_end"`
	TotalWorkedMs    int64   `json:"total_worked_ms"`
	TotalWorkedHours float64 `json:"total_worked_hours"`
	ShiftCount       int     `json:"shift_count"`
	LateCount        int     `json:"late_count"`
	LateMinutesTotal int     `json:"late_minutes_total"`
}

// TeamStatsResponse merges the per-member summaries of one team.
type TeamStatsResponse struct {
	TeamID      string `json:"team_id"`
	Period      string `json:"period"`
	WindowStart string `json:"window_start"`
	WindowEnd   string `json:"window_end"`
	MemberCount int    `json:"member_count"`

	TotalWorkedMs    int64   `json:"total_worked_ms"`
	TotalWorkedHours float64 `json:"total_worked_hours"`
	LateCount        int     `json:"late_count"`
	LateMinutesTotal int     `json:"late_minutes_total"`

	// DaysWithData counts distinct calendar days on which at least one
	// member has a qualifying shift or late arrival.
	DaysWithData int `json:"days_with_data"`

	// AvgPerDayPerPersonMs is the mean over days-with-data of each
	// day's total divided by the distinct members active that day.
	AvgPerDayPerPersonMs int64 `json:"avg_per_day_per_person_ms"`
}
