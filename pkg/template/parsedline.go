package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Hanaasagi/patgen/pkg/snippet"
	"github.com/Hanaasagi/patgen/pkg/textfsm"
)

var (
	compoundOpRe = regexp.MustCompile(`(?i)^(next|continue|error)\.(norecord|record|clearall|clear)$`)
	simpleOpRe   = regexp.MustCompile(`(?i)^(next|continue|error|norecord|record|clearall|clear)$`)
	flagRe       = regexp.MustCompile(`(?i)^(\w+?)(__+) (.*)$`)
	stateNameRe  = regexp.MustCompile(`^[A-Za-z]\w*$`)
	blankRe      = regexp.MustCompile(`\s`)
)

var operators = map[string]string{
	"next":     textfsm.Next,
	"continue": textfsm.Continue,
	"error":    textfsm.Error,
	"norecord": textfsm.NoRecord,
	"record":   textfsm.Record,
	"clear":    textfsm.Clear,
	"clearall": textfsm.Clearall,
}

// ParsedLine is one line of user data: a snippet, a state name, a comment
// or a rule kept verbatim, optionally followed by "-> operator".
type ParsedLine struct {
	text string
	line string
	op   string

	ignoreCase bool
	comment    string
	kept       string
	isComment  bool
	isKept     bool

	variables []snippet.Variable
}

// ParseLine splits the operator and the flag off a line of user data.
func ParseLine(text string) (*ParsedLine, error) {
	if strings.ContainsAny(text, "\r\n") {
		return nil, fmt.Errorf("%w: %q holds a line break", ErrParsedLine, text)
	}

	pl := &ParsedLine{text: text, line: text}
	if before, after, ok := cutLast(text, " -> "); ok {
		pl.op = normalizeOp(strings.TrimSpace(after))
		pl.line = strings.TrimRight(before, " \t")
	}

	m := flagRe.FindStringSubmatch(pl.line)
	if m == nil {
		return pl, nil
	}
	switch strings.ToLower(m[1]) {
	case "ignore_case":
		pl.ignoreCase = true
	case "comment":
		pl.isComment = true
		prefix := ""
		if len(m[2]) == 2 {
			prefix = statementIndent
		}
		pl.comment = prefix + "# " + m[3]
	case "keep":
		pl.isKept = true
		pl.kept = statementIndent + "^" + strings.TrimLeft(strings.TrimSpace(m[3]), "^")
	default:
		return nil, fmt.Errorf("%w: unknown flag %q in %q", ErrParsedLine, m[1], text)
	}
	pl.line = m[3]
	return pl, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// normalizeOp fixes the case of the operators so that "next.norecord"
// becomes "Next.NoRecord". A state name or an error message is kept.
func normalizeOp(op string) string {
	first, rest, _ := strings.Cut(op, " ")
	switch {
	case compoundOpRe.MatchString(first):
		m := compoundOpRe.FindStringSubmatch(first)
		first = operators[strings.ToLower(m[1])] + "." + operators[strings.ToLower(m[2])]
	case simpleOpRe.MatchString(first):
		first = operators[strings.ToLower(first)]
	}
	return strings.TrimSpace(first + " " + rest)
}

// IsEmpty reports whether the line holds nothing but blanks.
func (pl *ParsedLine) IsEmpty() bool { return strings.TrimSpace(pl.line) == "" }

// IsStateName reports whether the line names a state.
func (pl *ParsedLine) IsStateName() bool {
	return stateNameRe.MatchString(strings.TrimSpace(pl.text))
}

// Operator returns the normalized "-> operator" suffix.
func (pl *ParsedLine) Operator() string { return pl.op }

// Variables returns the variables declared by the line. It is filled by
// Statement.
func (pl *ParsedLine) Variables() []snippet.Variable { return pl.variables }

// Statement renders the template line. Empty lines render as "".
func (pl *ParsedLine) Statement() (string, error) {
	switch {
	case pl.IsEmpty():
		return "", nil
	case pl.isComment:
		return pl.comment, nil
	case pl.isKept:
		return pl.kept, nil
	case pl.IsStateName():
		return strings.TrimSpace(pl.text), nil
	}

	tr, err := snippet.Translate(pl.line)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrParsedLine, pl.text, err)
	}

	stmt := tr.Statement
	switch {
	case len(tr.Variables) > 0:
		pl.variables = append([]snippet.Variable(nil), tr.Variables...)
	case tr.Literal && !blankRe.MatchString(pl.line) && compiles(pl.line):
		// a bare word is taken as a hand written expression
		stmt = pl.line
	}

	if pl.ignoreCase {
		stmt = "(?i)" + stmt
	}
	stmt = strings.Replace(stmt, "(?i)^", "^(?i)", 1)
	if !strings.HasPrefix(stmt, "^") {
		stmt = "^" + stmt
	}
	if strings.HasSuffix(stmt, "$") && !strings.HasSuffix(stmt, "$$") && !strings.HasSuffix(stmt, `\$`) {
		stmt += "$"
	}
	stmt = statementIndent + stmt
	if pl.op != "" {
		stmt += " -> " + pl.op
	}
	return stmt, nil
}

func compiles(expr string) bool {
	_, err := regexp.Compile(expr)
	return err == nil
}
