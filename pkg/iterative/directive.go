package iterative

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	directiveRe = regexp.MustCompile(`^capture\(([^)]*)\) keep\(([^)]*)\) action\(([^)]*)\): ?(.*)$`)
	splitOpRe   = regexp.MustCompile(`^(\w+)-split(?:-(.+))?$`)
	joinOpRe    = regexp.MustCompile(`^(\w+):(\w+)-join$`)
	opStartRe   = regexp.MustCompile(`^\s*\w+[-:]`)
)

type opKind int

const (
	splitOp opKind = iota
	joinOp
)

// op is one entry of action(...).
type op struct {
	kind   opKind
	from   string
	to     string
	delims string
}

// directive is the prefix of an editable snippet line.
type directive struct {
	capture []string
	keep    []string
	actions []op
	body    string
}

// isDirective reports whether line is meant as an editable snippet line.
func isDirective(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "capture(")
}

func parseDirective(line string) (directive, error) {
	m := directiveRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return directive{}, fmt.Errorf("%w: %q", ErrMalformedDirective, line)
	}

	d := directive{
		capture: varNames(m[1]),
		keep:    varNames(m[2]),
		body:    m[4],
	}
	for _, raw := range splitOps(m[3]) {
		o, err := parseOp(raw)
		if err != nil {
			return directive{}, fmt.Errorf("%w: %q in %q", ErrMalformedDirective, raw, line)
		}
		d.actions = append(d.actions, o)
	}
	return d, nil
}

// varNames reads "4, 8,10" as v4, v8, v10.
func varNames(list string) []string {
	var names []string
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		names = append(names, "v"+strings.TrimPrefix(id, "v"))
	}
	return names
}

// splitOps cuts the action list on commas. A comma that does not start a
// new operation belongs to the split characters of the previous one.
func splitOps(list string) []string {
	var ops []string
	for _, part := range strings.Split(list, ",") {
		if n := len(ops); n > 0 && !opStartRe.MatchString(part) {
			ops[n-1] += "," + part
			continue
		}
		ops = append(ops, part)
	}

	out := ops[:0]
	for _, o := range ops {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func parseOp(raw string) (op, error) {
	if m := joinOpRe.FindStringSubmatch(raw); m != nil {
		return op{kind: joinOp, from: "v" + m[1], to: "v" + m[2]}, nil
	}
	if m := splitOpRe.FindStringSubmatch(raw); m != nil {
		return op{kind: splitOp, from: "v" + m[1], delims: m[2]}, nil
	}
	return op{}, fmt.Errorf("unknown action")
}
