// Package iterative refines a generated line pattern by hand. A line is
// rendered as an editable snippet whose capture, keep and action directives
// are applied when the snippet is read back.
package iterative

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Hanaasagi/patgen/pkg/fuzzymatch"
	"github.com/Hanaasagi/patgen/pkg/ndiff"
	"github.com/Hanaasagi/patgen/pkg/pattern"
)

const asciiPuncts = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var tokenRe = regexp.MustCompile(`([a-z_]+)\((c?var|kvar)=(v\w*), value=([^)]*)\)`)

// mode is how a token ends up in the generated pattern.
type mode int

const (
	literal  mode = iota // matched verbatim
	captured             // named group
	kept                 // unnamed group
)

var modeKeys = map[mode]string{literal: "var", captured: "cvar", kept: "kvar"}

type token struct {
	category string
	name     string
	value    string
	sep      string
	mode     mode
}

func (t token) snippet() string {
	return fmt.Sprintf("%s(%s=%s, value=%s)", t.category, modeKeys[t.mode], t.name, pattern.EscapeSymbols(t.value))
}

// LinePattern is one line under refinement.
type LinePattern struct {
	label  string
	tokens []token
}

// NewLinePattern reads a raw line, or an editable snippet line produced by
// Snippet with its directives applied. Variables are named v<label><index>.
func NewLinePattern(lineOrSnippet, label string) (*LinePattern, error) {
	lp := &LinePattern{label: label}
	if !isDirective(lineOrSnippet) {
		lp.symbolize(lineOrSnippet)
		return lp, nil
	}

	d, err := parseDirective(lineOrSnippet)
	if err != nil {
		return nil, err
	}
	if err := lp.parseBody(d.body, lineOrSnippet); err != nil {
		return nil, err
	}
	if err := lp.apply(d); err != nil {
		return nil, err
	}
	return lp, nil
}

func (lp *LinePattern) symbolize(line string) {
	tl := ndiff.Tokenize(strings.TrimRight(line, " \t\r\n"))
	for i, tok := range tl.Tokens {
		sep := tok.Sep
		if i == 0 {
			sep = tl.Leading
		}
		lp.tokens = append(lp.tokens, token{
			category: pattern.Classify(tok.Text).Category().String(),
			name:     lp.varName(i),
			value:    tok.Text,
			sep:      sep,
		})
	}
}

func (lp *LinePattern) parseBody(body, raw string) error {
	last := 0
	for _, m := range tokenRe.FindAllStringSubmatchIndex(body, -1) {
		sep := body[last:m[0]]
		if strings.TrimSpace(sep) != "" {
			return fmt.Errorf("%w: unexpected %q in %q", ErrMalformedDirective, sep, raw)
		}
		category := body[m[2]:m[3]]
		if _, ok := pattern.PatternForName(category); !ok {
			return unknownCategory(category)
		}

		t := token{
			category: category,
			name:     body[m[6]:m[7]],
			value:    pattern.RestoreSymbols(body[m[8]:m[9]]),
			sep:      sep,
		}
		switch body[m[4]:m[5]] {
		case "cvar":
			t.mode = captured
		case "kvar":
			t.mode = kept
		}
		lp.tokens = append(lp.tokens, t)
		last = m[1]
	}
	if strings.TrimSpace(body[last:]) != "" {
		return fmt.Errorf("%w: unexpected %q in %q", ErrMalformedDirective, body[last:], raw)
	}
	return nil
}

var suggester = fuzzymatch.NewFuzzyMatcher(false, 3)

func unknownCategory(name string) error {
	hints := suggester.Suggest(name, pattern.SnippetNames(), 3)
	if len(hints) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownCategory, name, strings.Join(hints, ", "))
}

func (lp *LinePattern) varName(index int) string {
	return "v" + lp.label + strconv.Itoa(index)
}

// nextIndex returns one past the largest variable index of the line.
func (lp *LinePattern) nextIndex() int {
	next := 0
	for _, t := range lp.tokens {
		n, err := strconv.Atoi(strings.TrimPrefix(t.name, "v"+lp.label))
		if err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

func (lp *LinePattern) find(name string) (int, error) {
	for i, t := range lp.tokens {
		if t.name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no variable %s", ErrMalformedDirective, name)
}

func (lp *LinePattern) apply(d directive) error {
	for _, o := range d.actions {
		var err error
		switch o.kind {
		case splitOp:
			err = lp.split(o.from, o.delims)
		case joinOp:
			err = lp.join(o.from, o.to)
		}
		if err != nil {
			return err
		}
	}

	for _, names := range []struct {
		list []string
		mode mode
	}{{d.capture, captured}, {d.keep, kept}} {
		for _, name := range names.list {
			i, err := lp.find(name)
			if err != nil {
				return err
			}
			lp.tokens[i].mode = names.mode
		}
	}
	return nil
}

// split replaces a variable by its pieces. Runs of delimiters become their
// own pieces; punctuation is the delimiter set when delims is empty.
func (lp *LinePattern) split(name, delims string) error {
	i, err := lp.find(name)
	if err != nil {
		return err
	}
	if delims == "" {
		delims = asciiPuncts
	}

	orig := lp.tokens[i]
	next := lp.nextIndex()
	var pieces []token
	for j, word := range ndiff.Tokenize(orig.value).Tokens {
		sep := word.Sep
		if j == 0 {
			sep = orig.sep
		}
		for _, text := range cut(word.Text, delims) {
			pieces = append(pieces, token{
				category: pattern.Classify(text).Category().String(),
				name:     lp.varName(next),
				value:    text,
				sep:      sep,
			})
			next++
			sep = ""
		}
	}
	if len(pieces) < 2 {
		return nil
	}

	slog.Debug("split variable", "name", name, "pieces", len(pieces))
	lp.tokens = append(lp.tokens[:i], append(pieces, lp.tokens[i+1:]...)...)
	return nil
}

// cut separates text into alternating runs of delimiter and other
// characters.
func cut(text, delims string) []string {
	var out []string
	start := 0
	inDelim := false
	for i, r := range text {
		d := strings.ContainsRune(delims, r)
		if i > 0 && d != inDelim {
			out = append(out, text[start:i])
			start = i
		}
		inDelim = d
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// join merges the variables from..to, separators included, into one
// variable named after the first.
func (lp *LinePattern) join(from, to string) error {
	i, err := lp.find(from)
	if err != nil {
		return err
	}
	j, err := lp.find(to)
	if err != nil {
		return err
	}
	if j < i {
		i, j = j, i
	}

	merged := lp.tokens[i]
	for _, t := range lp.tokens[i+1 : j+1] {
		merged.value += t.sep + t.value
	}
	node := pattern.Classify(merged.value)
	if !node.Category().Valid() {
		return fmt.Errorf("%w: %q", pattern.ErrUnsupportedPattern, merged.value)
	}
	merged.category = node.Category().String()

	slog.Debug("join variables", "from", from, "to", to, "category", merged.category)
	lp.tokens = append(lp.tokens[:i], append([]token{merged}, lp.tokens[j+1:]...)...)
	return nil
}

// Snippet renders the line as an editable snippet with empty directives.
func (lp *LinePattern) Snippet() string {
	var b strings.Builder
	b.WriteString("capture() keep() action(): ")
	for _, t := range lp.tokens {
		b.WriteString(t.sep)
		b.WriteString(t.snippet())
	}
	return b.String()
}

// Regex returns the expression matching the line. Captured variables are
// named groups and kept ones unnamed groups; the rest is literal.
func (lp *LinePattern) Regex() string {
	var b, text strings.Builder
	flush := func() {
		b.WriteString(pattern.EscapeText(text.String(), " "))
		text.Reset()
	}
	for _, t := range lp.tokens {
		if t.mode == literal {
			text.WriteString(t.sep + t.value)
			continue
		}
		text.WriteString(t.sep)
		flush()
		pat, _ := pattern.PatternForName(t.category)
		if t.mode == captured {
			fmt.Fprintf(&b, "(?P<%s>%s)", t.name, pat)
		} else {
			fmt.Fprintf(&b, "(%s)", pat)
		}
	}
	flush()
	return b.String()
}

// TemplateSnippet returns the line as a template snippet line.
func (lp *LinePattern) TemplateSnippet() string {
	var b strings.Builder
	for _, t := range lp.tokens {
		b.WriteString(t.sep)
		switch t.mode {
		case captured:
			fmt.Fprintf(&b, "%s(var_%s)", t.category, t.name)
		case kept:
			fmt.Fprintf(&b, "%s()", t.category)
		default:
			b.WriteString(t.value)
		}
	}
	return b.String()
}

// Variables returns the names of the captured variables.
func (lp *LinePattern) Variables() []string {
	var names []string
	for _, t := range lp.tokens {
		if t.mode == captured {
			names = append(names, t.name)
		}
	}
	return names
}
