package pattern

import "errors"

var (
	// ErrUnsupportedPattern is returned when a node has no lattice category.
	ErrUnsupportedPattern = errors.New("unsupported pattern")
	// ErrNotImplemented is returned when two categories have no join.
	ErrNotImplemented = errors.New("recommendation not implemented")
)
