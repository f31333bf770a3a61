package textfsm

import (
	"fmt"
	"regexp"
	"strings"
)

var lineBreakRe = regexp.MustCompile(`\r?\n|\r`)

// slot is the running state of one value while text is parsed.
type slot struct {
	v *Value

	value string
	set   bool

	list     []string
	filldown string
	filled   bool
}

func (s *slot) assign(value string, matched bool, fsm *run, idx int) {
	s.value, s.set = value, matched
	if s.v.has(OptionFilldown) {
		s.filldown, s.filled = s.value, s.set
	}
	if s.v.has(OptionList) && matched {
		s.list = append(s.list, value)
	}
	if s.v.has(OptionFillup) && matched && value != "" {
		for i := len(fsm.rows) - 1; i >= 0; i-- {
			if fsm.rows[i][idx] != "" {
				break
			}
			fsm.rows[i][idx] = value
		}
	}
}

func (s *slot) clear() {
	s.value, s.set = "", false
	if s.v.has(OptionFilldown) {
		s.value, s.set = s.filldown, s.filled
	}
	if s.v.has(OptionList) && !s.v.has(OptionFilldown) {
		s.list = nil
	}
}

func (s *slot) clearAll() {
	s.value, s.set = "", false
	s.filldown, s.filled = "", false
	s.list = nil
}

// empty reports whether the slot adds nothing to a record.
func (s *slot) empty() bool {
	if s.v.has(OptionList) {
		return len(s.list) == 0
	}
	return !s.set
}

func (s *slot) text() string {
	if s.v.has(OptionList) {
		return strings.Join(s.list, ListSeparator)
	}
	return s.value
}

// run is one pass of a template over text.
type run struct {
	t     *Template
	slots []*slot
	state string
	rows  [][]string
}

// ParseText runs the template over text and returns one map per record.
func (t *Template) ParseText(text string) ([]map[string]string, error) {
	rows, err := t.ParseTextToLists(text)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		rec := make(map[string]string, len(row))
		for j, v := range t.values {
			rec[v.Name] = row[j]
		}
		out[i] = rec
	}
	return out, nil
}

// ParseTextToLists runs the template over text and returns one row per
// record with the cells in Header order.
func (t *Template) ParseTextToLists(text string) ([][]string, error) {
	fsm := &run{t: t, state: StartState}
	for _, v := range t.values {
		fsm.slots = append(fsm.slots, &slot{v: v})
	}

	lines := lineBreakRe.Split(text, -1)
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		if err := fsm.check(line, i+1); err != nil {
			return nil, err
		}
		if fsm.state == EndState || fsm.state == EOFState {
			break
		}
	}

	// implicit EOF record, suppressed by an explicit EOF state
	if _, eof := t.states[EOFState]; fsm.state != EndState && !eof {
		fsm.appendRecord()
	}
	return fsm.rows, nil
}

func (fsm *run) check(line string, lineNum int) error {
	for _, r := range fsm.t.states[fsm.state] {
		m := r.re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}

		for gi, name := range r.re.SubexpNames() {
			v, ok := fsm.t.byName[name]
			if name == "" || !ok {
				continue
			}
			idx := fsm.index(v)
			start, end := m[2*gi], m[2*gi+1]
			if start < 0 {
				fsm.slots[idx].assign("", false, fsm, idx)
				continue
			}
			fsm.slots[idx].assign(line[start:end], true, fsm, idx)
		}

		switch r.RecordOp {
		case Record:
			fsm.appendRecord()
		case Clear:
			fsm.clearRecord()
		case Clearall:
			fsm.clearAll()
		}

		switch r.LineOp {
		case Error:
			if r.NewState != "" {
				return LineError{Line: lineNum, err: fmt.Errorf("%w: %s, rule line %d, input %q", ErrState, strings.Trim(r.NewState, `"`), r.Line, line)}
			}
			return LineError{Line: lineNum, err: fmt.Errorf("%w: rule line %d, input %q", ErrState, r.Line, line)}
		case Continue:
			continue
		}

		if r.NewState != "" {
			fsm.state = r.NewState
		}
		return nil
	}
	return nil
}

func (fsm *run) index(v *Value) int {
	for i, s := range fsm.slots {
		if s.v == v {
			return i
		}
	}
	return -1
}

func (fsm *run) appendRecord() {
	row := make([]string, len(fsm.slots))
	empty := true
	for i, s := range fsm.slots {
		if s.v.has(OptionRequired) && (s.empty() || s.text() == "") {
			fsm.clearRecord()
			return
		}
		if !s.empty() {
			empty = false
		}
		row[i] = s.text()
	}
	if empty {
		return
	}
	fsm.rows = append(fsm.rows, row)
	fsm.clearRecord()
}

func (fsm *run) clearRecord() {
	for _, s := range fsm.slots {
		s.clear()
	}
}

func (fsm *run) clearAll() {
	for _, s := range fsm.slots {
		s.clearAll()
	}
}
