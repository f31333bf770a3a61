// Package textfsm compiles TextFSM templates and parses text with them.
// A template declares Values and States whose rules extract records from
// semi-formatted text such as command output.
package textfsm

import (
	"bufio"
	"regexp"
	"strings"
)

var (
	commentRe = regexp.MustCompile(`^\s*#`)
	ruleRe    = regexp.MustCompile(`^(?: {1,2}|\t)\^`)
)

// Template is a compiled template. It is safe to call ParseText from
// several goroutines.
type Template struct {
	values []*Value
	byName map[string]*Value
	states map[string][]*Rule
	order  []string
}

type scanner struct {
	s   *bufio.Scanner
	num int
	// line holds a line read ahead
	line    string
	pending bool
}

func (sc *scanner) next() (string, bool) {
	if sc.pending {
		sc.pending = false
		return sc.line, true
	}
	if !sc.s.Scan() {
		return "", false
	}
	sc.num++
	sc.line = strings.TrimRight(sc.s.Text(), "\r")
	return sc.line, true
}

func (sc *scanner) unread() { sc.pending = true }

// Parse compiles a template.
func Parse(text string) (*Template, error) {
	t := &Template{byName: map[string]*Value{}, states: map[string][]*Rule{}}
	sc := &scanner{s: bufio.NewScanner(strings.NewReader(text))}

	if err := t.parseValues(sc); err != nil {
		return nil, err
	}
	for {
		more, err := t.parseState(sc)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	if err := sc.s.Err(); err != nil {
		return nil, LineError{Line: sc.num, err: err}
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Template) parseValues(sc *scanner) error {
	for {
		line, ok := sc.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			if len(t.values) > 0 {
				break
			}
			continue
		}
		if commentRe.MatchString(line) {
			continue
		}
		if !strings.HasPrefix(line, "Value ") {
			if len(t.values) == 0 {
				return templateErrorf(sc.num, "expected a Value definition, got %q", line)
			}
			return templateErrorf(sc.num, "expected a blank line after the last Value, got %q", line)
		}

		v, err := parseValue(line, sc.num)
		if err != nil {
			return err
		}
		if _, dup := t.byName[v.Name]; dup {
			return templateErrorf(sc.num, "duplicate value name %q", v.Name)
		}
		t.values = append(t.values, v)
		t.byName[v.Name] = v
	}
	if len(t.values) == 0 {
		return templateErrorf(sc.num, "no Value definition")
	}
	return nil
}

// parseState reads one state. It reports false once the input is used up.
func (t *Template) parseState(sc *scanner) (bool, error) {
	var name string
	for {
		line, ok := sc.next()
		if !ok {
			return false, nil
		}
		if strings.TrimSpace(line) == "" || commentRe.MatchString(line) {
			continue
		}
		name = line
		break
	}
	if !nameRe.MatchString(name) || len(name) > maxNameLength {
		return false, templateErrorf(sc.num, "invalid state name %q", name)
	}
	if _, dup := t.states[name]; dup {
		return false, templateErrorf(sc.num, "duplicate state name %q", name)
	}
	t.states[name] = nil
	t.order = append(t.order, name)

	for {
		line, ok := sc.next()
		if !ok {
			return false, nil
		}
		if strings.TrimSpace(line) == "" {
			return true, nil
		}
		if commentRe.MatchString(line) {
			continue
		}
		if !ruleRe.MatchString(line) {
			if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
				sc.unread()
				return true, nil
			}
			return false, templateErrorf(sc.num, "missing white space or caret before rule %q", line)
		}
		r, err := parseRule(line, sc.num, t.byName)
		if err != nil {
			return false, err
		}
		t.states[name] = append(t.states[name], r)
	}
}

func (t *Template) validate() error {
	if _, ok := t.states[StartState]; !ok {
		return templateErrorf(0, "missing state %q", StartState)
	}
	if rules := t.states[EndState]; len(rules) > 0 {
		return templateErrorf(rules[0].Line, "state %q must be empty", EndState)
	}
	if rules := t.states[EOFState]; len(rules) > 0 {
		return templateErrorf(rules[0].Line, "state %q must be empty", EOFState)
	}
	for _, name := range t.order {
		for _, r := range t.states[name] {
			if r.NewState == "" || r.LineOp == Error {
				continue
			}
			if r.NewState == EndState || r.NewState == EOFState {
				continue
			}
			if _, ok := t.states[r.NewState]; !ok {
				return templateErrorf(r.Line, "state %q is not defined", r.NewState)
			}
		}
	}
	return nil
}

// Header returns the value names in declaration order.
func (t *Template) Header() []string {
	names := make([]string, len(t.values))
	for i, v := range t.values {
		names[i] = v.Name
	}
	return names
}

// Values returns the declared values.
func (t *Template) Values() []Value {
	out := make([]Value, len(t.values))
	for i, v := range t.values {
		out[i] = *v
	}
	return out
}

// States returns the state names in declaration order.
func (t *Template) States() []string {
	return append([]string(nil), t.order...)
}
