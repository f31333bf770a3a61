package textfsm

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplate is returned for a template that cannot be compiled.
	ErrTemplate = errors.New("template error")
	// ErrState is returned when an Error action fires while parsing text.
	ErrState = errors.New("state error")
)

// LineError locates an error at a template or input line, counted from 1.
type LineError struct {
	Line int
	err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.err)
}

func (e LineError) Unwrap() error { return e.err }

func templateErrorf(line int, format string, args ...any) error {
	return LineError{Line: line, err: fmt.Errorf("%w: %s", ErrTemplate, fmt.Sprintf(format, args...))}
}
