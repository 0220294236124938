package common

import "errors"

// ErrDegenerateGeometry is returned when a plane intersection or projection denominator is singular
// and no finite result exists. Callers recover by falling back to a camera's default matrices.
var ErrDegenerateGeometry = errors.New("degenerate geometry")
