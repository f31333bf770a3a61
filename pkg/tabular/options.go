package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// Options holds the settings of a Table.
type Options struct {
	Divider           string
	ColumnsCount      int
	HeadersData       string
	CustomHeadersData string
	ColumnWidths      []int
	From, To          int
	HasRange          bool
	LeadingGapSlack   int
	OneLineMarker     string
	MultiLineMarker   string
}

// Option configures a Table.
type Option func(*Options)

// DefaultOptions returns the settings used when no option is given.
func DefaultOptions() Options {
	return Options{
		LeadingGapSlack: DefaultLeadingGapSlack,
		OneLineMarker:   DefaultOneLineMarker,
		MultiLineMarker: DefaultMultiLineMarker,
	}
}

// WithDivider sets how cells are separated: "|", "  " or " ".
func WithDivider(divider string) Option {
	return func(o *Options) { o.Divider = divider }
}

// WithColumnsCount sets the expected number of columns.
func WithColumnsCount(n int) Option {
	return func(o *Options) { o.ColumnsCount = n }
}

// WithHeadersData sets the header line, which is also the first rule of a
// template snippet.
func WithHeadersData(line string) Option {
	return func(o *Options) { o.HeadersData = line }
}

// WithCustomHeadersData sets a dash line giving the columns. Column names
// become col0, col1, ... and every line is data.
func WithCustomHeadersData(dashLine string) Option {
	return func(o *Options) { o.CustomHeadersData = dashLine }
}

// WithColumnWidths sets fixed widths; the last column is open ended.
func WithColumnWidths(widths ...int) Option {
	return func(o *Options) { o.ColumnWidths = append([]int(nil), widths...) }
}

// WithLineRange restricts the table to lines [from, to). The line at to
// ends the table in a template snippet.
func WithLineRange(from, to int) Option {
	return func(o *Options) {
		o.From, o.To, o.HasRange = from, to, true
	}
}

// WithGapSlack overrides DefaultLeadingGapSlack.
func WithGapSlack(n int) Option {
	return func(o *Options) { o.LeadingGapSlack = n }
}

// WithMarkers sets the prefixes flagging rows of a positional table that
// span several lines. An empty marker is not recognized.
func WithMarkers(oneLine, multiLine string) Option {
	return func(o *Options) { o.OneLineMarker, o.MultiLineMarker = oneLine, multiLine }
}

// ParseWidths reads a width list such as "10, 15,".
func ParseWidths(text string) ([]int, error) {
	var widths []int
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.Atoi(part)
		if err != nil || w <= 0 {
			return nil, fmt.Errorf("%w: column width %q", ErrOption, part)
		}
		widths = append(widths, w)
	}
	return widths, nil
}
