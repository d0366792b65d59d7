package attendance

import "errors"

// Ledger invariant violations. These are rejections of new writes,
// never silent corrections.
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in, check out first")
	ErrNoOpenShift       = errors.New("no check-in found, check in first")
	ErrAlreadyCheckedOut = errors.New("already checked out, check in first")
)

var (
	ErrEventNotFound    = errors.New("attendance event not found")
	ErrStoreUnavailable = errors.New("attendance store unavailable")
)
