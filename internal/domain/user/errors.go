package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrForbidden             = errors.New("not allowed to act on behalf of this user")
	ErrAdminAccessRequired   = errors.New("admin access required")
	ErrManagerAccessRequired = errors.New("manager access required")
)

// ErrDirectoryUnavailable marks failures of the user directory store,
// distinct from the attendance ledger being unreachable.
var ErrDirectoryUnavailable = errors.New("user directory unavailable")
