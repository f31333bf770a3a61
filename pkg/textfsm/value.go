package textfsm

import (
	"regexp"
	"strings"
)

// Value options.
const (
	OptionFilldown = "Filldown"
	OptionFillup   = "Fillup"
	OptionKey      = "Key"
	OptionList     = "List"
	OptionRequired = "Required"
)

// ListSeparator joins the items of a List value in a record.
const ListSeparator = ", "

const maxNameLength = 48

var nameRe = regexp.MustCompile(`^\w+$`)

// Value is one declared column.
type Value struct {
	Name    string
	Regex   string
	Options []string

	// group is Regex with its outer group named after the value
	group string
}

func (v *Value) has(option string) bool {
	for _, o := range v.Options {
		if o == option {
			return true
		}
	}
	return false
}

// parseValue reads "Value [Options] name (regex)".
func parseValue(line string, lineNum int) (*Value, error) {
	fields := strings.Split(line, " ")
	if len(fields) < 3 {
		return nil, templateErrorf(lineNum, "expect 3 or more tokens in value definition %q", line)
	}

	v := &Value{}
	if strings.HasPrefix(fields[2], "(") {
		v.Name = fields[1]
		v.Regex = strings.Join(fields[2:], " ")
	} else {
		if len(fields) < 4 {
			return nil, templateErrorf(lineNum, "missing regex in value definition %q", line)
		}
		v.Options = strings.Split(fields[1], ",")
		v.Name = fields[2]
		v.Regex = strings.Join(fields[3:], " ")
	}

	if !nameRe.MatchString(v.Name) || len(v.Name) > maxNameLength {
		return nil, templateErrorf(lineNum, "invalid value name %q", v.Name)
	}
	if !strings.HasPrefix(v.Regex, "(") || !strings.HasSuffix(v.Regex, ")") {
		return nil, templateErrorf(lineNum, "value %q must be contained within a '()' pair", v.Name)
	}
	if _, err := regexp.Compile(v.Regex); err != nil {
		return nil, templateErrorf(lineNum, "value %q: %v", v.Name, err)
	}

	seen := map[string]bool{}
	for _, o := range v.Options {
		switch o {
		case OptionFilldown, OptionFillup, OptionKey, OptionList, OptionRequired:
		default:
			return nil, templateErrorf(lineNum, "unknown option %q of value %q", o, v.Name)
		}
		if seen[o] {
			return nil, templateErrorf(lineNum, "duplicate option %q of value %q", o, v.Name)
		}
		seen[o] = true
	}

	v.group = "(?P<" + v.Name + ">" + v.Regex[1:]
	return v, nil
}
