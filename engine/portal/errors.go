package portal

import "errors"

var (
	// ErrUnknownPortal is returned when a handle does not refer to a live portal in the table.
	ErrUnknownPortal = errors.New("unknown portal")
	// ErrAlreadyLinked is returned when linking a portal that already has an exit.
	ErrAlreadyLinked = errors.New("portal already linked")
	// ErrSelfLink is returned when a portal is linked to itself.
	ErrSelfLink = errors.New("portal cannot link to itself")
)
