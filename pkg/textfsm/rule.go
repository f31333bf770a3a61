package textfsm

import (
	"regexp"
	"strings"
)

// Line operators.
const (
	Next     = "Next"
	Continue = "Continue"
	Error    = "Error"
)

// Record operators.
const (
	NoRecord = "NoRecord"
	Record   = "Record"
	Clear    = "Clear"
	Clearall = "Clearall"
)

// Reserved states.
const (
	StartState = "Start"
	EndState   = "End"
	EOFState   = "EOF"
)

var (
	matchActionRe = regexp.MustCompile(`^(.*)(\s->(.*))$`)
	operatorRe    = regexp.MustCompile(`^\s+(Continue|Next|Error)(?:\.(Clearall|Clear|NoRecord|Record))?(?:\s+(\w+|".*"))?$`)
	recordOpRe    = regexp.MustCompile(`^\s+(Clearall|Clear|NoRecord|Record)(?:\s+(\w+|".*"))?$`)
	newStateRe    = regexp.MustCompile(`^(?:\s+(\w+|".*"))?$`)
	substituteRe  = regexp.MustCompile(`\$\$|\$\{(\w+)\}|\$(\w+)`)
)

// Rule is one "^regex -> action" line of a state.
type Rule struct {
	Match    string
	LineOp   string
	RecordOp string
	NewState string
	Line     int

	re *regexp.Regexp
}

func parseRule(text string, lineNum int, values map[string]*Value) (*Rule, error) {
	r := &Rule{Match: strings.TrimSpace(text), LineOp: Next, RecordOp: NoRecord, Line: lineNum}

	if m := matchActionRe.FindStringSubmatch(r.Match); m != nil {
		r.Match = m[1]
		action := m[3]
		switch {
		case operatorRe.MatchString(action):
			a := operatorRe.FindStringSubmatch(action)
			r.LineOp = a[1]
			if a[2] != "" {
				r.RecordOp = a[2]
			}
			r.NewState = a[3]
		case recordOpRe.MatchString(action):
			a := recordOpRe.FindStringSubmatch(action)
			r.RecordOp, r.NewState = a[1], a[2]
		case newStateRe.MatchString(action):
			r.NewState = newStateRe.FindStringSubmatch(action)[1]
		default:
			return nil, templateErrorf(lineNum, "badly formatted rule %q", text)
		}
	}

	if r.LineOp == Continue && r.NewState != "" {
		return nil, templateErrorf(lineNum, "action Continue with a new state is not allowed: %q", text)
	}
	if r.LineOp != Error && strings.HasPrefix(r.NewState, `"`) {
		return nil, templateErrorf(lineNum, "a quoted message needs the Error operator: %q", text)
	}

	var missing string
	expr := substituteRe.ReplaceAllStringFunc(r.Match, func(s string) string {
		if s == "$$" {
			return "$"
		}
		name := strings.Trim(s, "${}")
		v, ok := values[name]
		if !ok {
			missing = name
			return s
		}
		return v.group
	})
	if missing != "" {
		return nil, templateErrorf(lineNum, "invalid variable substitution %q", missing)
	}

	re, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, templateErrorf(lineNum, "invalid regular expression %q: %v", expr, err)
	}
	r.re = re
	return r, nil
}
