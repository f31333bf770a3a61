package tabular

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Hanaasagi/patgen/pkg/ndiff"
)

var (
	borderRe     = regexp.MustCompile(`^[\s+|=-]*-[\s+|=-]*$`)
	dashRunRe    = regexp.MustCompile(`[-=]+`)
	multiSpaceRe = regexp.MustCompile(`\S+(?: \S+)*`)
	singleWordRe = regexp.MustCompile(`\S+`)
)

// Column is one detected column. End is exclusive; -1 marks the open last
// column.
type Column struct {
	Name  string
	Start int
	End   int
}

// overlap reports how many bytes of [start, end) fall inside the column.
func (c Column) overlap(start, end int) int {
	hi := end
	if c.End >= 0 && c.End < hi {
		hi = c.End
	}
	lo := start
	if c.Start > lo {
		lo = c.Start
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// isBorder reports whether line only draws table rules.
func isBorder(line string) bool {
	return borderRe.MatchString(line)
}

func columnsFromStarts(starts []int) []Column {
	cols := make([]Column, len(starts))
	for i, s := range starts {
		cols[i] = Column{Start: s, End: -1}
		if i+1 < len(starts) {
			cols[i].End = starts[i+1]
		}
	}
	return cols
}

// startsFromWidths turns widths into cumulative column starts. The column
// after the last width is open ended.
func startsFromWidths(widths []int) []int {
	starts := []int{0}
	pos := 0
	for _, w := range widths {
		pos += w
		starts = append(starts, pos)
	}
	return starts
}

// startsFromDashes returns the start of every dash run of a border line.
func startsFromDashes(line string) []int {
	var starts []int
	for _, loc := range dashRunRe.FindAllStringIndex(line, -1) {
		starts = append(starts, loc[0])
	}
	return starts
}

// startsFromHeader splits a header line on the divider.
func startsFromHeader(header, divider string) []int {
	re := singleWordRe
	if divider == MultiSpaceDivider {
		re = multiSpaceRe
	}
	var starts []int
	for _, loc := range re.FindAllStringIndex(header, -1) {
		starts = append(starts, loc[0])
	}
	return starts
}

// computeProjection counts the non-blank characters of every byte column.
func computeProjection(lines []string) []int {
	maxWidth := 0
	for _, line := range lines {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	projection := make([]int, maxWidth)
	for _, line := range lines {
		for i, char := range line {
			if !unicode.IsSpace(char) {
				projection[i]++
			}
		}
	}
	return projection
}

type gap struct {
	start, length int
}

// findBoundaries turns a projection into column starts. Blank runs between
// content are candidate boundaries: the widest count-1 of them when count is
// set, otherwise those at least DefaultMinColumnGap wide.
func findBoundaries(projection []int, count int) []int {
	first := -1
	var gaps []gap
	runStart := -1
	for i, density := range projection {
		if density == 0 {
			if runStart < 0 && first >= 0 {
				runStart = i
			}
			continue
		}
		if first < 0 {
			first = i
		}
		if runStart >= 0 {
			gaps = append(gaps, gap{start: runStart, length: i - runStart})
			runStart = -1
		}
	}
	if first < 0 {
		return nil
	}

	var chosen []gap
	if count > 0 {
		sorted := append([]gap(nil), gaps...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].length > sorted[j].length })
		if count-1 < len(sorted) {
			sorted = sorted[:count-1]
		}
		chosen = sorted
	} else {
		for _, g := range gaps {
			if g.length >= DefaultMinColumnGap {
				chosen = append(chosen, g)
			}
		}
	}

	starts := []int{first}
	for _, g := range chosen {
		starts = append(starts, g.start+g.length)
	}
	sort.Ints(starts)
	return starts
}

// cell is the text of one column in a row with its byte span; Start is -1
// for an empty cell.
type cell struct {
	Text       string
	Start, End int
}

// assignCells places every token of line in the column it overlaps most.
func assignCells(line string, cols []Column) []cell {
	cells := make([]cell, len(cols))
	for i := range cells {
		cells[i].Start = -1
	}

	tl := ndiff.Tokenize(line)
	for _, tok := range tl.Tokens {
		best, bestOverlap := 0, 0
		for i, col := range cols {
			if o := col.overlap(tok.Start, tok.End); o > bestOverlap {
				best, bestOverlap = i, o
			}
		}
		c := &cells[best]
		if c.Start < 0 {
			c.Start = tok.Start
		}
		c.End = tok.End
	}

	for i := range cells {
		if cells[i].Start >= 0 {
			cells[i].Text = line[cells[i].Start:cells[i].End]
		}
	}
	return cells
}

// splitPipes cuts a bar divided line into trimmed cells. Outer bars do not
// open a cell.
func splitPipes(line string) []cell {
	trimmed := strings.TrimSpace(line)
	parts := strings.Split(line, PipeDivider)
	if strings.HasPrefix(trimmed, PipeDivider) {
		parts = parts[1:]
	}
	if strings.HasSuffix(trimmed, PipeDivider) && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	cells := make([]cell, len(parts))
	for i, part := range parts {
		cells[i] = cell{Text: strings.TrimSpace(part), Start: -1}
		if cells[i].Text != "" {
			cells[i].Start = 0
		}
	}
	return cells
}
