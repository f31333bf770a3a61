package ndiff

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Hanaasagi/patgen/pkg/pattern"
)

// State is the processing state of a LinePattern.
type State int

const (
	Init State = iota
	Finalized
)

func (s State) String() string {
	if s == Finalized {
		return "finalized"
	}
	return "init"
}

// LineOption configures a LinePattern.
type LineOption func(*LinePattern)

// WithLabel inserts label into every variable name (v0 becomes v<label>0).
func WithLabel(label string) LineOption {
	return func(lp *LinePattern) { lp.label = label }
}

// WithLessen makes separators and repetitions tolerant of any spacing.
func WithLessen() LineOption {
	return func(lp *LinePattern) { lp.lessen = true }
}

// LinePattern generalizes a set of example lines into one regex and one
// snippet by aligning the lines on the tokens they share.
type LinePattern struct {
	lines    []string
	label    string
	lessen   bool
	pairwise bool

	state     State
	prepared  []TokenizedLine
	pattern   string
	snippet   string
	variables []string
}

// NewLinePattern aligns lines and builds the pattern.
func NewLinePattern(lines []string, opts ...LineOption) (*LinePattern, error) {
	lp := &LinePattern{lines: append([]string(nil), lines...)}
	for _, opt := range opts {
		opt(lp)
	}
	if err := lp.Process(); err != nil {
		return nil, err
	}
	return lp, nil
}

// PatternBetween returns the tolerant pattern covering two lines. Unlike a
// multi-line pattern, a change spanning the whole line keeps its joined
// category.
func PatternBetween(a, b string) (string, error) {
	lp, err := NewLinePattern([]string{a, b}, WithLessen(), func(lp *LinePattern) { lp.pairwise = true })
	if err != nil {
		return "", err
	}
	return lp.Pattern(), nil
}

func (lp *LinePattern) Pattern() string     { return lp.pattern }
func (lp *LinePattern) Snippet() string     { return lp.snippet }
func (lp *LinePattern) State() State        { return lp.state }
func (lp *LinePattern) Lines() []string     { return append([]string(nil), lp.lines...) }
func (lp *LinePattern) Variables() []string { return append([]string(nil), lp.variables...) }

// Reset drops every result and returns to the Init state.
func (lp *LinePattern) Reset() {
	lp.state = Init
	lp.prepared = nil
	lp.pattern = ""
	lp.snippet = ""
	lp.variables = nil
}

// Prepare keeps the non-blank lines. Fewer than two remaining is an error.
func (lp *LinePattern) Prepare() error {
	lp.prepared = lp.prepared[:0]
	for _, line := range lp.lines {
		tl := Tokenize(line)
		if !tl.IsBlank() {
			lp.prepared = append(lp.prepared, tl)
		}
	}
	if len(lp.prepared) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientLines, len(lp.prepared))
	}
	return nil
}

// Process builds the pattern and snippet. Nothing is kept on failure.
func (lp *LinePattern) Process() error {
	lp.Reset()
	if err := lp.Prepare(); err != nil {
		return err
	}

	segments := lp.segments()
	pieces, err := lp.render(segments)
	if err != nil {
		lp.Reset()
		return err
	}

	var pat, snip strings.Builder
	startPat, startSnip := marker(lp.prepared, "start", func(tl TokenizedLine) string { return tl.Leading })
	endPat, endSnip := marker(lp.prepared, "end", func(tl TokenizedLine) string { return tl.Trailing })

	pat.WriteString(startPat)
	snip.WriteString(startSnip)
	for i, p := range pieces {
		if i > 0 {
			pat.WriteString(p.sepPattern)
			snip.WriteString(p.sepSnippet)
		} else {
			snip.WriteString(" ")
		}
		pat.WriteString(p.pattern)
		snip.WriteString(p.snippet)
	}
	pat.WriteString(endPat)
	snip.WriteString(" ")
	snip.WriteString(endSnip)

	lp.pattern = pat.String()
	lp.snippet = snip.String()
	lp.state = Finalized
	slog.Debug("line pattern built", "lines", len(lp.prepared), "pieces", len(pieces), "pattern", lp.pattern)
	return nil
}

// segment is a token range per line; anchors have the same text in every
// line, gaps may differ or be empty.
type segment struct {
	anchor bool
	ranges [][2]int
}

// segments aligns every line against the first one. Anchors are the tokens
// of the first line found in a matching block of every pairwise diff.
func (lp *LinePattern) segments() []segment {
	first := lp.prepared[0]
	n := len(first.Tokens)

	positions := make([][]int, len(lp.prepared))
	positions[0] = make([]int, n)
	for i := range positions[0] {
		positions[0][i] = i
	}
	for k := 1; k < len(lp.prepared); k++ {
		positions[k] = make([]int, n)
		for i := range positions[k] {
			positions[k][i] = -1
		}
		m := difflib.NewMatcher(first.Texts(), lp.prepared[k].Texts())
		for _, block := range m.GetMatchingBlocks() {
			for d := 0; d < block.Size; d++ {
				positions[k][block.A+d] = block.B + d
			}
		}
	}

	var anchors []int
	for i := 0; i < n; i++ {
		shared := true
		for k := 1; k < len(lp.prepared); k++ {
			if positions[k][i] < 0 {
				shared = false
				break
			}
		}
		if shared {
			anchors = append(anchors, i)
		}
	}
	slog.Debug("aligned lines", "anchors", len(anchors), "tokens", n)

	prev := make([]int, len(lp.prepared))
	var segments []segment
	gap := func(next func(k int) int) segment {
		s := segment{ranges: make([][2]int, len(lp.prepared))}
		for k := range lp.prepared {
			s.ranges[k] = [2]int{prev[k], next(k)}
		}
		return s
	}
	for _, a := range anchors {
		segments = append(segments, gap(func(k int) int { return positions[k][a] }))
		anchor := segment{anchor: true, ranges: make([][2]int, len(lp.prepared))}
		for k := range lp.prepared {
			pos := positions[k][a]
			anchor.ranges[k] = [2]int{pos, pos + 1}
			prev[k] = pos + 1
		}
		segments = append(segments, anchor)
	}
	segments = append(segments, gap(func(k int) int { return len(lp.prepared[k].Tokens) }))
	return segments
}

// piece is one rendered segment with the separator in front of it.
type piece struct {
	pattern, snippet       string
	sepPattern, sepSnippet string
	optional               bool
	present                []bool
	seps                   []string
}

// render turns segments into pieces. A line sharing no token with the others
// becomes a single changed piece matching any non-whitespace phrase.
func (lp *LinePattern) render(segments []segment) ([]piece, error) {
	var pieces []piece
	for _, seg := range segments {
		p := piece{present: make([]bool, len(lp.prepared))}
		values := make([]string, len(lp.prepared))
		empty := 0
		for k, r := range seg.ranges {
			if r[0] >= r[1] {
				empty++
				continue
			}
			p.present[k] = true
			values[k] = lp.prepared[k].Value(r[0], r[1])
			if r[0] > 0 {
				p.seps = append(p.seps, lp.prepared[k].Tokens[r[0]].Sep)
			}
		}
		if empty == len(values) {
			continue
		}

		first := seg.ranges[0]
		switch {
		case seg.anchor || (empty == 0 && allEqual(values)):
			raw := lp.prepared[0].Span(first[0], first[1])
			p.pattern = pattern.EscapeText(raw, " ")
			p.snippet = raw
		default:
			frag := NewChanged(values[:1], values[1:]).Readjust()
			opts := FragmentOptions{
				Var:    fmt.Sprintf("v%d", len(lp.variables)),
				Label:  lp.label,
				Lessen: lp.lessen,
				Root:   !lp.pairwise && len(segments) == 1,
			}
			var err error
			if p.pattern, err = frag.ChangedPattern(opts); err != nil {
				return nil, err
			}
			if p.snippet, err = frag.ChangedSnippet(opts); err != nil {
				return nil, err
			}
			p.optional = frag.IsContainingEmptyChanged()
			lp.variables = append(lp.variables, opts.name())
		}
		pieces = append(pieces, p)
	}

	for i := range pieces {
		optional := false
		if i > 0 && pieces[i-1].optional {
			optional = true
		}
		if i > 0 && i == len(pieces)-1 && pieces[i].optional {
			optional = true
		}
		pieces[i].sepPattern, pieces[i].sepSnippet = lp.separator(pieces[i].seps, optional)
	}
	return pieces, nil
}

func (lp *LinePattern) separator(seps []string, optional bool) (pat, snip string) {
	if len(seps) == 0 {
		seps = []string{" "}
	}
	hasTab := false
	for _, sep := range seps {
		if strings.ContainsAny(sep, "\t\v\f\r") {
			hasTab = true
		}
	}

	switch {
	case lp.lessen && hasTab:
		pat, snip = `\s+`, "\t "
	case lp.lessen:
		pat, snip = " +", "  "
	case allEqual(seps):
		pat, snip = pattern.EscapeWhitespace(seps[0], " "), seps[0]
	case hasTab:
		pat, snip = `\s+`, "\t "
	default:
		pat, snip = " +", "  "
	}
	if optional {
		pat = "(" + pat + ")?"
	}
	return pat, snip
}

// marker renders start() or end() from the leading or trailing whitespace of
// every line.
func marker(lines []TokenizedLine, name string, blank func(TokenizedLine) string) (pat, snip string) {
	count, hasTab := 0, false
	for _, tl := range lines {
		ws := blank(tl)
		if ws != "" {
			count++
		}
		if strings.Trim(ws, " ") != "" {
			hasTab = true
		}
	}

	var kind string
	switch {
	case count == 0:
		return "", name + "()"
	case count < len(lines) && hasTab:
		pat, kind = `\s*`, "whitespace"
	case count < len(lines):
		pat, kind = " *", "space"
	case hasTab:
		pat, kind = `\s+`, "whitespaces"
	default:
		pat, kind = " +", "spaces"
	}
	return pat, fmt.Sprintf("%s(%s)", name, kind)
}

func allEqual(values []string) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
