package iterative

import "errors"

var (
	// ErrMalformedDirective is returned for a snippet line whose capture,
	// keep or action part cannot be read.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrUnknownCategory is returned for a token naming no known category.
	ErrUnknownCategory = errors.New("unknown category")
)
