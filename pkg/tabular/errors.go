package tabular

import "errors"

var (
	// ErrColumns is returned when the detected columns disagree with the
	// requested count or no column can be found.
	ErrColumns = errors.New("column mismatch")
	// ErrNoData is returned when the text holds no data row.
	ErrNoData = errors.New("no tabular data")
	// ErrOption is returned for an invalid option value.
	ErrOption = errors.New("invalid option")
)
