package attendance

import (
	"context"
)

// EventRepository is the append-only event store boundary. The ledger
// is the only shared mutable state in the system; everything derived
// from it is recomputed per request.
type EventRepository interface {
	// ListByUser returns every event for one user. No ordering is
	// guaranteed; callers sort by CreatedAt.
	ListByUser(ctx context.Context, userID string) ([]Event, error)

	// LatestForUser returns the most recent event for a user by
	// CreatedAt (ties broken by insertion order), or nil when the user
	// has no events.
	LatestForUser(ctx context.Context, userID string) (*Event, error)

	// Append inserts a new event if and only if it alternates with the
	// user's latest event. The latest-event read and the insert run as
	// one serialized step per user, so two concurrent check-ins cannot
	// both succeed. Returns ErrAlreadyCheckedIn, ErrNoOpenShift or
	// ErrAlreadyCheckedOut on violation.
	Append(ctx context.Context, userID string, eventType EventType) (Event, error)

	// List retrieves events with filters and pagination (manager/admin)
	List(ctx context.Context, filter EventFilter) ([]Event, int64, error)

	GetByID(ctx context.Context, id string) (Event, error)

	// Update rewrites type and/or timestamp of an existing event. Used
	// by admins to fix bad historical data.
	Update(ctx context.Context, event Event) error

	Delete(ctx context.Context, id string) error
}
