package attendance

import (
	"context"
)

// Authorizer decides whether a principal may record attendance events
// on behalf of a target user. Implementations fail closed: anything
// other than a nil return denies the write.
type Authorizer interface {
	CanActFor(ctx context.Context, principal Principal, targetUserID string) error
}

// AttendanceService defines business logic for the attendance ledger
type AttendanceService interface {
	// CheckIn appends a check-in event for the target user, rejecting
	// it when an open shift already exists
	CheckIn(ctx context.Context, principal Principal, req CheckInRequest) (EventResponse, error)

	// CheckOut appends a check-out event for the target user, rejecting
	// it when no shift is open
	CheckOut(ctx context.Context, principal Principal, req CheckOutRequest) (EventResponse, error)

	// Status reports whether the principal currently has an open shift
	Status(ctx context.Context, principal Principal) (StatusResponse, error)

	// ListMyEvents returns the principal's own events
	ListMyEvents(ctx context.Context, principal Principal, filter EventFilter) (ListEventsResponse, error)

	// ListEvents retrieves events with filters (manager/admin)
	ListEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)

	// GetEvent retrieves a single event by ID
	GetEvent(ctx context.Context, id string) (EventResponse, error)

	// UpdateEvent rewrites an event (admin) - for fixing wrong data
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (EventResponse, error)

	// DeleteEvent removes an event (admin)
	DeleteEvent(ctx context.Context, id string) error
}
