package template

import "errors"

var (
	// ErrParsedLine is returned for a snippet line that cannot be read.
	ErrParsedLine = errors.New("invalid snippet line")
	// ErrBuild is returned when the template engine rejects a template or
	// fails while parsing test data.
	ErrBuild = errors.New("template build error")
	// ErrInvalidFormat is returned for user data without any variable.
	ErrInvalidFormat = errors.New("invalid template format")
)
