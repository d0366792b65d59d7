package attendance

import (
	"time"
)

// EventType is the kind of ledger entry. Events for one user must
// alternate check_in, check_out, check_in, ... ordered by CreatedAt.
type EventType string

const (
	CheckIn  EventType = "check_in"
	CheckOut EventType = "check_out"
)

func (t EventType) IsValid() bool {
	return t == CheckIn || t == CheckOut
}

// Event is one immutable entry in the attendance ledger. Events are
// only ever appended; shifts and statistics are derived from them on
// demand and never stored.
type Event struct {
	ID        string
	UserID    string
	Type      EventType
	CreatedAt time.Time
}
