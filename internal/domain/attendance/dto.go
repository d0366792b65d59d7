package attendance

import (
	"time"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/user"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/validator"
)

// Principal is the authenticated caller, resolved from JWT claims by
// the handler layer.
type Principal struct {
	UserID string
	Role   user.Role
}

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest records a check-in. UserID is optional; when empty the
// event is recorded for the principal themselves.
type CheckInRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type CheckOutRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type EventResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// StatusResponse reports whether the caller currently has an open shift.
type StatusResponse struct {
	CheckedIn bool    `json:"checked_in"`
	Since     *string `json:"since,omitempty"`
}

type EventFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (f *EventFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Events     []EventResponse `json:"events"`
}

// UpdateEventRequest fixes wrong historical data (admin only). Either
// field may be omitted to leave it unchanged.
type UpdateEventRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

func (r *UpdateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid event ID",
		})
	}

	if r.Type != nil && !EventType(*r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be check_in or check_out",
		})
	}

	if r.CreatedAt != nil {
		if _, ok := validator.IsValidTimestamp(*r.CreatedAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "created_at",
				Message: "created_at must be an RFC 3339 timestamp",
			})
		}
	}

	if r.Type == nil && r.CreatedAt == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "nothing to update",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
