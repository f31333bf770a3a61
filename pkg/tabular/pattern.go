package tabular

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Hanaasagi/patgen/pkg/lineref"
	"github.com/Hanaasagi/patgen/pkg/pattern"
)

// TableState is the state entered after the header of a ranged table.
const TableState = "Table"

// columnKind is the folded category of one column.
type columnKind struct {
	name    string
	pattern string
	extra   int
}

func (k columnKind) token(variable string, list bool) string {
	args := []string{"var_" + variable}
	if k.extra > 0 {
		args = append(args, fmt.Sprintf("at_most_%d_phrase_occurrences", k.extra))
	}
	if list {
		args = append(args, "meta_data_list")
	}
	return fmt.Sprintf("%s(%s)", k.name, strings.Join(args, ", "))
}

func normalizeValue(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func (t *Table) kinds() ([]columnKind, error) {
	kinds := make([]columnKind, len(t.columns))
	for i, col := range t.columns {
		var nodes []pattern.Node
		extra := 0
		for _, r := range t.rows {
			value := normalizeValue(r.cells[i].Text)
			if value == "" {
				continue
			}
			nodes = append(nodes, pattern.Classify(value))
			if n := strings.Count(value, " "); n > extra {
				extra = n
			}
		}
		if len(nodes) == 0 {
			kinds[i] = columnKind{name: pattern.NonWhitespaces.String(), pattern: `\S+`}
			continue
		}

		node, err := pattern.Fold(nodes)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		cat := node.Category()
		if !cat.IsMultiToken() {
			kinds[i] = columnKind{name: cat.String(), pattern: node.Pattern()}
			continue
		}
		kinds[i] = columnKind{name: cat.Base().String(), pattern: node.RepeatPattern(extra), extra: extra}
	}
	return kinds, nil
}

// populated reports which cells of r hold a value.
func (r row) populated() []bool {
	mask := make([]bool, len(r.cells))
	for i, c := range r.cells {
		mask[i] = c.Text != ""
	}
	return mask
}

func (t *Table) sometimesEmpty(col int) bool {
	for _, r := range t.rowsOf(plainRow) {
		if r.cells[col].Text == "" {
			return true
		}
	}
	return false
}

// gapBounds returns the repetition bounds of the blank run between the
// populated cells prev and next, where columns from..next-1 are empty.
func (t *Table) gapBounds(rows []row, prev, next, from int) (lo, hi int) {
	minGap := -1
	for _, r := range rows {
		g := r.cells[next].Start - r.cells[prev].End
		if minGap < 0 || g < minGap {
			minGap = g
		}
		if g > hi {
			hi = g
		}
	}
	lo = t.columns[next].Start - t.columns[from].Start
	if lo > minGap-InnerGapSlack {
		lo = minGap - InnerGapSlack
	}
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

// ToRegex returns a regular expression matching a data row, with one named
// group per column. Rows spanning several lines are left out.
func (t *Table) ToRegex() (string, error) {
	kinds, err := t.kinds()
	if err != nil {
		return "", err
	}
	if t.pipe {
		return t.pipeRegex(kinds), nil
	}

	last := len(t.columns) - 1
	var b strings.Builder
	for i, col := range t.columns {
		group := fmt.Sprintf("(?P<%s>%s)", col.Name, kinds[i].pattern)
		optional := t.sometimesEmpty(i)
		middle := optional && i > 0 && i < last

		if i > 0 && !(optional && i == last) {
			switch {
			case middle || t.isMiddleOptional(i-1):
				b.WriteString(" ")
			case i-1 == 0 && t.sometimesEmpty(0):
				b.WriteString(" *")
			default:
				b.WriteString(" +")
			}
		}

		switch {
		case !optional:
			b.WriteString(group)
		case i == 0:
			b.WriteString(group + "?")
		case i == last:
			fmt.Fprintf(&b, "(?: +%s)?", group)
		default:
			lo, hi := t.middleBounds(i)
			fmt.Fprintf(&b, "(?P<%s>( {%d,%d})|( *%s *))", col.Name, lo, hi, kinds[i].pattern)
		}
	}
	return b.String(), nil
}

func (t *Table) isMiddleOptional(i int) bool {
	return i > 0 && i < len(t.columns)-1 && t.sometimesEmpty(i)
}

// middleBounds measures the blank run where column i is empty and both
// neighbours hold a value.
func (t *Table) middleBounds(i int) (lo, hi int) {
	var rows []row
	for _, r := range t.rowsOf(plainRow) {
		if r.cells[i].Text == "" && r.cells[i-1].Text != "" && r.cells[i+1].Text != "" {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return 0, t.columns[i+1].Start - t.columns[i].Start
	}
	return t.gapBounds(rows, i-1, i+1, i)
}

func (t *Table) pipeRegex(kinds []columnKind) string {
	var b strings.Builder
	if t.leadingPipe {
		b.WriteString(` *\|`)
	}
	for i, col := range t.columns {
		if i > 0 {
			b.WriteString(`\|`)
		}
		fmt.Fprintf(&b, " *(?P<%s>%s)? *", col.Name, kinds[i].pattern)
	}
	if t.trailingPipe {
		b.WriteString(`\|`)
	}
	return b.String()
}

// shape groups the rows sharing the same populated columns.
type shape struct {
	key  string
	mask []bool
	rows []row
}

// shapes returns the shapes of rows, the leftmost column being the most
// significant when ordering.
func shapes(rows []row) []*shape {
	byKey := make(map[string]*shape)
	var out []*shape
	for _, r := range rows {
		mask := r.populated()
		var key strings.Builder
		filled := false
		for _, p := range mask {
			if p {
				key.WriteByte('1')
				filled = true
			} else {
				key.WriteByte('0')
			}
		}
		if !filled {
			continue
		}
		s, ok := byKey[key.String()]
		if !ok {
			s = &shape{key: key.String(), mask: mask}
			byKey[s.key] = s
			out = append(out, s)
		}
		s.rows = append(s.rows, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].key > out[j].key })
	return out
}

// ToTemplateSnippet returns the header line followed by one record rule per
// row shape. A ranged table moves its rules into the Table state and ends
// with the line after the range.
//
// Head rows get rules of their own going to the next line, ahead of the
// tail rows recording the joined record. When a row goes on over continued
// rows, a line starting with a value records the previous record instead,
// and the columns filled by continued rows become list values.
func (t *Table) ToTemplateSnippet() (string, error) {
	kinds, err := t.kinds()
	if err != nil {
		return "", err
	}

	var lines []string
	ranged := t.opts.HasRange && t.header != ""
	if t.header != "" {
		header := t.header
		if ranged {
			header += " -> " + TableState
		}
		lines = append(lines, header)
	}
	if ranged {
		lines = append(lines, TableState)
	}

	if t.pipe {
		for _, s := range shapes(t.rows) {
			lines = append(lines, t.pipeRule(s, kinds))
		}
	} else {
		lines = append(lines, t.rules(kinds)...)
	}

	if t.hasAfter {
		lines = append(lines, lineref.LineSnippet(t.after)+" -> EOF")
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Table) rules(kinds []columnKind) []string {
	lists := make([]bool, len(t.columns))
	for _, r := range t.rowsOf(continuedRow) {
		for i, c := range r.cells {
			lists[i] = lists[i] || c.Text != ""
		}
	}

	record := "record"
	var lines []string
	if t.multiLine {
		record = "continue"
		lines = append(lines, fmt.Sprintf("start() %s()zero_or_spaces() -> continue.record", kinds[0].name))
	}
	for _, group := range []struct {
		kind rowKind
		op   string
	}{
		{headRow, "Next"},
		{tailRow, record},
		{plainRow, record},
		{continuedRow, "continue"},
	} {
		for _, s := range shapes(t.rowsOf(group.kind)) {
			lines = append(lines, t.rule(s, kinds, lists, group.op))
		}
	}
	return lines
}

func (t *Table) rule(s *shape, kinds []columnKind, lists []bool, op string) string {
	var b strings.Builder
	b.WriteString("start()")

	prev := -1
	for i, col := range t.columns {
		if !s.mask[i] {
			continue
		}
		switch {
		case prev < 0 && i > 0:
			lo, hi := t.leadingBounds(s.rows, i)
			fmt.Fprintf(&b, " space(repetition_%d_%d) ", lo, hi)
		case prev < 0:
			b.WriteString(" ")
		case i == prev+1:
			b.WriteString("  ")
		default:
			lo, hi := t.gapBounds(s.rows, prev, i, prev+1)
			fmt.Fprintf(&b, " space(repetition_%d_%d) ", lo, hi)
		}
		b.WriteString(kinds[i].token(col.Name, lists[i]))
		prev = i
	}

	if prev < len(t.columns)-1 || t.trailingBlank(s.rows) {
		b.WriteString(" end(space)")
	} else {
		b.WriteString(" end()")
	}
	b.WriteString(" -> " + op)
	return b.String()
}

func (t *Table) leadingBounds(rows []row, first int) (lo, hi int) {
	minGap := -1
	for _, r := range rows {
		g := r.cells[first].Start
		if minGap < 0 || g < minGap {
			minGap = g
		}
		if g > hi {
			hi = g
		}
	}
	lo = minGap - t.opts.LeadingGapSlack
	if lo < 0 {
		lo = 0
	}
	return lo, hi
}

func (t *Table) trailingBlank(rows []row) bool {
	if t.header != "" && strings.TrimRight(t.header, " \t") != t.header {
		return true
	}
	for _, r := range rows {
		if strings.TrimRight(r.line, " \t") != r.line {
			return true
		}
	}
	return false
}

func (t *Table) pipeRule(s *shape, kinds []columnKind) string {
	var b strings.Builder
	b.WriteString("start() ")
	if t.leadingPipe {
		b.WriteString("|zero_or_spaces()")
	}
	for i, col := range t.columns {
		if i > 0 {
			b.WriteString("zero_or_spaces()|zero_or_spaces()")
		}
		if s.mask[i] {
			b.WriteString(kinds[i].token(col.Name, false))
		}
	}
	if t.trailingPipe {
		b.WriteString("zero_or_spaces()|")
	}
	b.WriteString(" end(space) -> record")
	return b.String()
}
