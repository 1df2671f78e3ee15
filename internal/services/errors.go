package services

import "errors"

// Sentinel errors returned by the matching core. Handlers map these to
// HTTP statuses; everything else is treated as a store failure.
var (
	// ErrNotFound means the subject profile does not exist.
	ErrNotFound = errors.New("profile not found")

	// ErrConflict means a state-machine precondition was not met: the
	// pair was already swiped, already blocked, not matched, or the
	// target is the requester itself.
	ErrConflict = errors.New("conflicting relationship state")

	// ErrBlocked means a block between the two users forbids the action.
	ErrBlocked = errors.New("action not allowed between blocked users")

	// ErrInvalidSortKey is the defensive rejection of a sort key that
	// slipped past upstream validation.
	ErrInvalidSortKey = errors.New("unknown sort key")
)
