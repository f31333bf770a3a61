// Package tabular detects the columns of a text table and turns them into
// records, a regular expression or a template snippet.
package tabular

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Hanaasagi/patgen/pkg/textfsm"
)

var (
	lineBreakRe = regexp.MustCompile(`\r?\n|\r`)
	nonWordRe   = regexp.MustCompile(`\W+`)
	lower       = cases.Lower(language.Und)
)

// Record maps column names to cell values.
type Record map[string]string

type rowKind int

const (
	plainRow rowKind = iota
	// headRow holds the first value of a record continued by a tailRow
	headRow
	tailRow
	// continuedRow adds list values to the record of the row above
	continuedRow
)

type row struct {
	line  string
	kind  rowKind
	cells []cell
}

// Table is a parsed text table.
type Table struct {
	opts    Options
	columns []Column
	rows    []row

	// header is the line naming the columns, empty when the table has none
	header string

	pipe         bool
	leadingPipe  bool
	trailingPipe bool

	after    string
	hasAfter bool

	// multiLine is set when a row goes on over continued rows
	multiLine bool
}

// New parses text as a table.
func New(text string, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{opts: o}
	lines := lineBreakRe.Split(text, -1)
	if o.HasRange {
		if o.From < 0 || o.To > len(lines) || o.From >= o.To {
			return nil, fmt.Errorf("%w: line range %d-%d of %d lines", ErrOption, o.From, o.To, len(lines))
		}
		if o.To < len(lines) && strings.TrimSpace(lines[o.To]) != "" {
			t.after, t.hasAfter = lines[o.To], true
		}
		lines = lines[o.From:o.To]
	}

	var kept []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoData
	}

	var err error
	if o.Divider == PipeDivider {
		err = t.parsePipes(kept)
	} else {
		err = t.parsePositional(kept)
	}
	if err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return nil, ErrNoData
	}
	return t, nil
}

func (t *Table) parsePositional(lines []string) error {
	o := t.opts
	lines, kinds := t.markRows(lines)
	border := -1
	for i, line := range lines {
		if isBorder(line) {
			border = i
			break
		}
	}

	headerIdx := 0
	var starts []int
	switch {
	case o.CustomHeadersData != "":
		headerIdx = -1
		starts = startsFromDashes(o.CustomHeadersData)
	case len(o.ColumnWidths) > 0:
		starts = startsFromWidths(o.ColumnWidths)
	case border >= 0:
		headerIdx = border - 1
		starts = startsFromDashes(lines[border])
	case o.HeadersData != "":
		headerIdx = -1
		for i, line := range lines {
			if strings.TrimSpace(line) == strings.TrimSpace(o.HeadersData) {
				headerIdx = i
				break
			}
		}
		starts = startsFromHeader(o.HeadersData, o.Divider)
	case o.Divider != "":
		starts = startsFromHeader(lines[0], o.Divider)
	default:
		var single []string
		for i, line := range lines {
			if kinds[i] != headRow {
				single = append(single, line)
			}
		}
		starts = findBoundaries(computeProjection(single), o.ColumnsCount)
	}
	if err := t.checkCount(len(starts)); err != nil {
		return err
	}
	t.columns = columnsFromStarts(starts)

	if headerIdx >= 0 {
		t.header = lines[headerIdx]
	}
	if o.HeadersData != "" {
		t.header = o.HeadersData
	}

	var names []string
	if o.CustomHeadersData == "" && t.header != "" {
		for _, c := range assignCells(t.header, t.columns) {
			names = append(names, c.Text)
		}
	}
	t.name(names)

	for i := headerIdx + 1; i < len(lines); i++ {
		if isBorder(lines[i]) {
			continue
		}
		r := row{line: lines[i], kind: kinds[i]}
		if r.kind == headRow {
			r.cells = headCells(lines[i], t.columns)
		} else {
			r.cells = assignCells(lines[i], t.columns)
		}
		t.rows = append(t.rows, r)
	}
	return nil
}

// markRows strips the row markers off lines and tells the kind of every
// line. The line after a one-line marker is its tail; the indented lines
// after a multi-line marker continue its row.
func (t *Table) markRows(lines []string) ([]string, []rowKind) {
	o := t.opts
	out := make([]string, len(lines))
	kinds := make([]rowKind, len(lines))
	continuing := false
	for i, line := range lines {
		out[i] = line
		if i > 0 && kinds[i-1] == headRow {
			kinds[i] = tailRow
			continue
		}
		if rest, ok := cutMarker(line, o.OneLineMarker); ok {
			out[i], kinds[i], continuing = rest, headRow, false
			continue
		}
		if rest, ok := cutMarker(line, o.MultiLineMarker); ok {
			out[i], continuing, t.multiLine = rest, true, true
			continue
		}
		if continuing && strings.TrimLeft(line, " \t") != line && !isBorder(line) {
			kinds[i] = continuedRow
			continue
		}
		continuing = false
	}
	return out, kinds
}

func cutMarker(line, marker string) (string, bool) {
	if marker == "" {
		return line, false
	}
	return strings.CutPrefix(line, marker)
}

// headCells puts the whole text of line in the column where it starts.
func headCells(line string, cols []Column) []cell {
	cells := make([]cell, len(cols))
	for i := range cells {
		cells[i].Start = -1
	}
	text := strings.TrimSpace(line)
	start := strings.Index(line, text)
	col := 0
	for i, c := range cols {
		if c.Start <= start {
			col = i
		}
	}
	cells[col] = cell{Text: text, Start: start, End: start + len(text)}
	return cells
}

func (t *Table) parsePipes(lines []string) error {
	t.pipe = true
	border := ""
	var header string
	var data []string
	for _, line := range lines {
		switch {
		case isBorder(line):
			if border == "" {
				border = line
			}
		case header == "":
			header = line
		default:
			data = append(data, line)
		}
	}
	t.header = header
	if t.opts.HeadersData != "" {
		t.header = t.opts.HeadersData
	}

	var names []string
	switch {
	case strings.Contains(t.header, PipeDivider):
		for _, c := range splitPipes(t.header) {
			names = append(names, c.Text)
		}
	case border != "":
		t.columns = columnsFromStarts(startsFromDashes(border))
		for _, c := range assignCells(t.header, t.columns) {
			names = append(names, c.Text)
		}
	default:
		names = strings.Fields(t.header)
	}
	if err := t.checkCount(len(names)); err != nil {
		return err
	}
	if len(t.columns) != len(names) {
		t.columns = make([]Column, len(names))
	}
	t.name(names)

	for _, line := range data {
		cells := splitPipes(line)
		if len(cells) > len(t.columns) {
			return fmt.Errorf("%w: row %q has %d cells, expected %d", ErrColumns, line, len(cells), len(t.columns))
		}
		for len(cells) < len(t.columns) {
			cells = append(cells, cell{Start: -1})
		}
		t.rows = append(t.rows, row{line: line, cells: cells})

		trimmed := strings.TrimSpace(line)
		t.leadingPipe = t.leadingPipe || strings.HasPrefix(trimmed, PipeDivider)
		t.trailingPipe = t.trailingPipe || strings.HasSuffix(trimmed, PipeDivider)
	}
	return nil
}

func (t *Table) checkCount(n int) error {
	if n == 0 {
		return fmt.Errorf("%w: no column found", ErrColumns)
	}
	if t.opts.ColumnsCount > 0 && n != t.opts.ColumnsCount {
		return fmt.Errorf("%w: found %d columns, expected %d", ErrColumns, n, t.opts.ColumnsCount)
	}
	return nil
}

// name sets the column names from header cells. Missing or duplicate names
// fall back to their position.
func (t *Table) name(headers []string) {
	seen := make(map[string]bool, len(t.columns))
	for i := range t.columns {
		name := ""
		if i < len(headers) {
			name = normalizeName(headers[i])
		}
		if name == "" || seen[name] {
			name = fmt.Sprintf("col%d", i)
		}
		seen[name] = true
		t.columns[i].Name = name
	}
}

func normalizeName(text string) string {
	return strings.Trim(nonWordRe.ReplaceAllString(lower.String(strings.TrimSpace(text)), "_"), "_")
}

// Columns returns the detected columns.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Headers returns the column names.
func (t *Table) Headers() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Records returns one record per data row. A tail row completes the record
// of its head row; a continued row appends its values to the record above,
// separated as template list values are.
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.rows))
	for _, r := range t.rows {
		if n := len(records); n > 0 && (r.kind == tailRow || r.kind == continuedRow) {
			sep := " "
			if r.kind == continuedRow {
				sep = textfsm.ListSeparator
			}
			for i, col := range t.columns {
				switch text, prev := r.cells[i].Text, records[n-1][col.Name]; {
				case text == "":
				case prev == "":
					records[n-1][col.Name] = text
				default:
					records[n-1][col.Name] = prev + sep + text
				}
			}
			continue
		}
		rec := make(Record, len(t.columns))
		for i, col := range t.columns {
			rec[col.Name] = r.cells[i].Text
		}
		records = append(records, rec)
	}
	return records
}

// rowsOf returns the rows of the given kind.
func (t *Table) rowsOf(kind rowKind) []row {
	var rows []row
	for _, r := range t.rows {
		if r.kind == kind {
			rows = append(rows, r)
		}
	}
	return rows
}
