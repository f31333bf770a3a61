package ndiff

import "errors"

// ErrInsufficientLines is returned when fewer than two non-blank lines are
// given to a LinePattern.
var ErrInsufficientLines = errors.New("at least two non-blank lines are required")
