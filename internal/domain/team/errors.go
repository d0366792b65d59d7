package team

import "errors"

var (
	ErrTeamNotFound = errors.New("team not found")

	// ErrDirectoryUnavailable marks failures of the team directory
	// store, distinct from the attendance ledger being unreachable.
	ErrDirectoryUnavailable = errors.New("team directory unavailable")
)
