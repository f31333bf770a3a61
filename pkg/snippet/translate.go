// Package snippet translates template snippet lines into regular
// expressions and template rule statements.
package snippet

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Hanaasagi/patgen/pkg/fuzzymatch"
	"github.com/Hanaasagi/patgen/pkg/pattern"
	"github.com/Hanaasagi/patgen/pkg/textfsm"
)

// ErrUnknownName is returned for a variable token whose name is not a known
// snippet name.
var ErrUnknownName = errors.New("unknown snippet name")

var (
	tokenRe      = regexp.MustCompile(`([a-z][a-z_]*)\(([^()]*)\)`)
	atMostRe     = regexp.MustCompile(`^at_most_(\d+)_phrase_occurrences?$`)
	repetitionRe = regexp.MustCompile(`^repetition_(\d*)_(\d*)$`)
	metaDataRe   = regexp.MustCompile(`^meta_data_(\w+)$`)
	blankRunRe   = regexp.MustCompile(`\s+|\S+`)
)

var (
	startMarkers = map[string]string{"": "^", "space": "^ *", "spaces": "^ +", "whitespace": `^\s*`, "whitespaces": `^\s+`}
	endMarkers   = map[string]string{"": "", "space": " *", "spaces": " +", "whitespace": `\s*`, "whitespaces": `\s+`}
	blanks       = map[string]string{"space": " ", "spaces": " +", "zero_or_spaces": " *", "whitespace": `\s`, "whitespaces": `\s+`}
)

// valueOptions maps a meta_data_ argument to its template value option.
var valueOptions = map[string]string{
	"filldown": textfsm.OptionFilldown,
	"fillup":   textfsm.OptionFillup,
	"key":      textfsm.OptionKey,
	"list":     textfsm.OptionList,
	"required": textfsm.OptionRequired,
}

// Variable is a named capture produced by a snippet token. Options are the
// template value options given by meta_data_ arguments.
type Variable struct {
	Name    string
	Pattern string
	Options []string
}

// Line is a translated snippet line.
type Line struct {
	// Regex is a standalone expression with named groups.
	Regex string
	// Statement is the template rule with ${name} placeholders and a doubled
	// end anchor.
	Statement string
	Variables []Variable
	// Literal is set when the line holds no snippet token.
	Literal bool
}

type unitKind int

const (
	blankUnit unitKind = iota
	textUnit
	tokenUnit
)

type unit struct {
	kind unitKind
	text string
	name string
	args []string
}

func (u unit) is(name string) bool { return u.kind == tokenUnit && u.name == name }

func (u unit) optional() bool {
	if u.kind != tokenUnit {
		return false
	}
	for _, arg := range u.args {
		if arg == "or_empty" {
			return true
		}
	}
	return false
}

// Translate converts one snippet line.
func Translate(line string) (Line, error) {
	units := split(line)
	out := Line{Literal: true}
	var re, stmt strings.Builder
	for i, u := range units {
		switch u.kind {
		case blankUnit:
			if (i > 0 && units[i-1].is("start")) || (i+1 < len(units) && units[i+1].is("end")) {
				continue
			}
			ws := pattern.EscapeWhitespace(u.text, " ")
			if (i > 0 && units[i-1].optional()) || (i+1 < len(units) && units[i+1].optional() && isLast(units, i+1)) {
				ws = "(" + ws + ")?"
			}
			re.WriteString(ws)
			stmt.WriteString(ws)
		case textUnit:
			lit := pattern.EscapeLiteral(u.text)
			re.WriteString(lit)
			stmt.WriteString(strings.ReplaceAll(lit, `\$`, `\x24`))
		case tokenUnit:
			out.Literal = false
			r, s, v, err := translateToken(u)
			if err != nil {
				return Line{}, err
			}
			re.WriteString(r)
			stmt.WriteString(s)
			if v != nil {
				out.Variables = append(out.Variables, *v)
			}
		}
	}
	out.Regex = re.String()
	out.Statement = stmt.String()
	return out, nil
}

// isLast reports whether only blanks and an end marker follow units[i].
func isLast(units []unit, i int) bool {
	for _, u := range units[i+1:] {
		if u.kind != blankUnit && !u.is("end") {
			return false
		}
	}
	return true
}

// split cuts a line into blank runs, literal words and snippet tokens.
func split(line string) []unit {
	var units []unit
	literal := func(text string) {
		for _, part := range blankRunRe.FindAllString(text, -1) {
			kind := textUnit
			if strings.TrimSpace(part) == "" {
				kind = blankUnit
			}
			units = append(units, unit{kind: kind, text: part})
		}
	}

	last := 0
	for _, loc := range tokenRe.FindAllStringSubmatchIndex(line, -1) {
		name, rawArgs := line[loc[2]:loc[3]], line[loc[4]:loc[5]]
		if !isKnown(name, rawArgs) {
			continue
		}
		// a token glued to preceding text keeps that text literal
		literal(line[last:loc[0]])
		units = append(units, unit{kind: tokenUnit, text: line[loc[0]:loc[1]], name: name, args: splitArgs(rawArgs)})
		last = loc[1]
	}
	literal(line[last:])
	return mergeText(units)
}

// mergeText joins adjacent literal words so they are escaped as one token.
func mergeText(units []unit) []unit {
	var out []unit
	for _, u := range units {
		if n := len(out); n > 0 && u.kind == textUnit && out[n-1].kind == textUnit {
			out[n-1].text += u.text
			continue
		}
		out = append(out, u)
	}
	return out
}

func isKnown(name, rawArgs string) bool {
	switch name {
	case "start", "end", "space", "spaces", "zero_or_spaces", "whitespace", "whitespaces":
		return true
	}
	if _, ok := pattern.PatternForName(name); ok {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(rawArgs), "var_")
}

func splitArgs(raw string) []string {
	var args []string
	for _, arg := range strings.Split(raw, ",") {
		if arg = strings.TrimSpace(arg); arg != "" {
			args = append(args, arg)
		}
	}
	return args
}

func translateToken(u unit) (re, stmt string, v *Variable, err error) {
	first := ""
	if len(u.args) > 0 {
		first = u.args[0]
	}

	switch u.name {
	case "start":
		m, ok := startMarkers[first]
		if !ok {
			return "", "", nil, fmt.Errorf("%w: %s", ErrUnknownName, u.text)
		}
		return m, m, nil, nil
	case "end":
		m, ok := endMarkers[first]
		if !ok {
			return "", "", nil, fmt.Errorf("%w: %s", ErrUnknownName, u.text)
		}
		return m + "$", m + "$$", nil, nil
	case "space", "spaces", "zero_or_spaces", "whitespace", "whitespaces":
		if m := repetitionRe.FindStringSubmatch(first); m != nil {
			q := fmt.Sprintf(" {%s,%s}", orZero(m[1]), m[2])
			return q, q, nil, nil
		}
		return blanks[u.name], blanks[u.name], nil, nil
	}

	pat, ok := pattern.PatternForName(u.name)
	if !ok {
		return "", "", nil, unknown(u.name)
	}

	var name string
	var options []string
	optional := false
	for _, arg := range u.args {
		switch {
		case strings.HasPrefix(arg, "var_"):
			name = strings.TrimPrefix(arg, "var_")
		case arg == "or_empty":
			optional = true
		case metaDataRe.MatchString(arg):
			opt, ok := valueOptions[strings.ToLower(metaDataRe.FindStringSubmatch(arg)[1])]
			if !ok {
				return "", "", nil, fmt.Errorf("%w: %s in %s", ErrUnknownName, arg, u.text)
			}
			options = append(options, opt)
		case atMostRe.MatchString(arg):
			n, _ := strconv.Atoi(atMostRe.FindStringSubmatch(arg)[1])
			cat, _ := pattern.CategoryForName(u.name)
			base, _ := pattern.PatternForName(cat.Base().String())
			pat = base
			if n > 0 {
				pat = fmt.Sprintf("%s( %s){0,%d}", base, base, n)
			}
		}
	}
	if optional {
		pat += "|"
	}

	if name == "" {
		return "(" + pat + ")", "(" + pat + ")", nil, nil
	}
	v = &Variable{Name: name, Pattern: pat, Options: options}
	return fmt.Sprintf("(?P<%s>%s)", name, pat), "${" + name + "}", v, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

var suggester = fuzzymatch.NewFuzzyMatcher(false, 3)

func unknown(name string) error {
	hints := suggester.Suggest(name, pattern.SnippetNames(), 3)
	if len(hints) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	return fmt.Errorf("%w: %s (did you mean %s?)", ErrUnknownName, name, strings.Join(hints, ", "))
}
