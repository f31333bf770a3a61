package tabular

// Column detection
const (
	// DefaultMinColumnGap is the narrowest run of blank columns that separates
	// two columns when inferring columns from a projection
	DefaultMinColumnGap = 2

	// PipeDivider splits cells on vertical bars
	PipeDivider = "|"

	// MultiSpaceDivider splits header names on runs of two or more spaces
	MultiSpaceDivider = "  "

	// SingleSpaceDivider splits header names on any whitespace
	SingleSpaceDivider = " "
)

// Gap repetition
const (
	// DefaultLeadingGapSlack is subtracted from the narrowest observed leading
	// gap to get the lower bound of its repetition
	DefaultLeadingGapSlack = 2

	// InnerGapSlack is the count of literal spaces around an inner
	// space(repetition_A_B) token; the lower bound never exceeds the
	// narrowest observed gap minus this value
	InnerGapSlack = 2
)

// Row markers
const (
	// DefaultOneLineMarker starts a line holding only the overflowing first
	// value of a record; the next line holds the rest of the record
	DefaultOneLineMarker = "<user-marker-one-line>"

	// DefaultMultiLineMarker starts a row whose record goes on over the
	// following indented lines; their values are collected as lists
	DefaultMultiLineMarker = "<user-marker-multi-line>"
)
