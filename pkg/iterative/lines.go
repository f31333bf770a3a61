package iterative

import (
	"regexp"
	"strconv"
	"strings"
)

// LineBreak matches the end of a line in a generated block expression.
const LineBreak = `(\r?\n|\r)`

var lineBreakRe = regexp.MustCompile(`\r?\n|\r`)

// LinesPattern is a block of lines under refinement. Line i is labelled i,
// the first line carries no label.
type LinesPattern struct {
	lines []*LinePattern
}

// NewLinesPattern reads every line of text with NewLinePattern.
func NewLinesPattern(text string) (*LinesPattern, error) {
	text = strings.TrimRight(text, "\r\n")
	lp := &LinesPattern{}
	for i, line := range lineBreakRe.Split(text, -1) {
		label := ""
		if i > 0 {
			label = strconv.Itoa(i)
		}
		p, err := NewLinePattern(line, label)
		if err != nil {
			return nil, err
		}
		lp.lines = append(lp.lines, p)
	}
	return lp, nil
}

// Lines returns the line patterns.
func (lp *LinesPattern) Lines() []*LinePattern {
	return append([]*LinePattern(nil), lp.lines...)
}

func (lp *LinesPattern) join(render func(*LinePattern) string, sep string) string {
	parts := make([]string, len(lp.lines))
	for i, line := range lp.lines {
		parts[i] = render(line)
	}
	return strings.Join(parts, sep)
}

// Snippet returns one editable snippet line per line.
func (lp *LinesPattern) Snippet() string {
	return lp.join((*LinePattern).Snippet, "\n")
}

// Regex returns the block expression, lines joined by LineBreak.
func (lp *LinesPattern) Regex() string {
	return lp.join((*LinePattern).Regex, LineBreak)
}

// TemplateSnippet returns one template snippet line per line.
func (lp *LinesPattern) TemplateSnippet() string {
	return lp.join((*LinePattern).TemplateSnippet, "\n")
}
