package portal_camera

import "errors"

var (
	// ErrMissingLink is reported when the portal being rendered has no exit portal. The render
	// still happens, from the untransformed eye with the default matrices.
	ErrMissingLink = errors.New("portal has no exit link")
	// ErrDestroyed is returned by a portal camera that was torn down, including one torn down
	// while its own render was in progress.
	ErrDestroyed = errors.New("portal camera destroyed")
)
