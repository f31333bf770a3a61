package tabular

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Render draws the records as a grid.
func (t *Table) Render() string {
	headers := t.Headers()
	records := t.Records()
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
		for _, rec := range records {
			if w := runewidth.StringWidth(rec[h]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	rule := func() {
		b.WriteString("+")
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteString("+")
		}
		b.WriteString("\n")
	}
	line := func(values []string) {
		b.WriteString("|")
		for i, v := range values {
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(v, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	rule()
	line(headers)
	rule()
	for _, rec := range records {
		values := make([]string, len(headers))
		for i, h := range headers {
			values[i] = rec[h]
		}
		line(values)
	}
	rule()
	return b.String()
}
