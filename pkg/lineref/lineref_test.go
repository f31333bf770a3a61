package lineref

import (
	"testing"
)

func TestPosition(t *testing.T) {
	lines := []string{
		"line1: _abc =123",
		"line2: ____ ===",
		"(line11]: ?.?",
		"line22: 1.23",
	}

	tests := []struct {
		ref      any
		expected int
		found    bool
	}{
		{nil, 0, false},
		{1, 1, true},
		{-1, 3, true},
		{7, 0, false},
		{"--wildcard line[[:digit:]]", 0, true},
		{"--wildcard line[[:digit:]][[:digit:]]", 2, true},
		{"--wildcard _* =*", 0, true},
		{"--wildcard _{2,} ={2,}", 1, true},
		{`--regex line[0-9]{2,}`, 2, true},
		{`--regex _\w+ =\w+`, 0, true},
		{`--regex _{2,} ={2,}`, 1, true},
		{`--regex [?]+[.][?]`, 2, true},
		{`--regex [0-9]+[.][0-9]+`, 3, true},
		{"line22", 3, true},
		{"missing", 0, false},
	}

	for _, tt := range tests {
		index, found, err := Position(lines, tt.ref)
		if err != nil {
			t.Errorf("Unexpected error for %v: %v", tt.ref, err)
			continue
		}
		if found != tt.found || index != tt.expected {
			t.Errorf("For %v expected (%d, %v), got (%d, %v)", tt.ref, tt.expected, tt.found, index, found)
		}
	}
}

func TestPosition_Errors(t *testing.T) {
	if _, _, err := Position([]string{"a"}, 1.5); err == nil {
		t.Error("Expected error for float reference")
	}
	if _, _, err := Position([]string{"a"}, "--regex ("); err == nil {
		t.Error("Expected error for invalid regex")
	}
}

func TestFixedLineSnippet(t *testing.T) {
	lines := []string{
		" ",
		" \t ",
		"line1: _abc 1 23",
		"line2: 1.1.1.1 a::b",
		"line3: ........ abc",
		"line22: 1.23",
	}

	tests := []struct {
		ref      any
		expected string
	}{
		{0, "start() end(space)"},
		{1, "start() end(whitespace)"},
		{2, "line1: _abc digit() digits()"},
		{3, "line2: 1.1.1.1 a::b"},
		{4, "line3: puncts() abc"},
		{-1, "line22: number()"},
		{"--regex ^line22", "line22: number()"},
	}
	for _, tt := range tests {
		got, err := FixedLineSnippet(lines, tt.ref)
		if err != nil {
			t.Errorf("Unexpected error for %v: %v", tt.ref, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("For %v expected %q, got %q", tt.ref, tt.expected, got)
		}
	}

	if _, err := FixedLineSnippet(lines, 42); err == nil {
		t.Error("Expected error for out of range index")
	}
}

func TestLineSnippet(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"", "start() end(space)"},
		{" \t ", "start() end(whitespace)"},
		{"line1: _abc 1 23", "line1: _abc digit() digits()"},
		{"line3: ++++++++ abc", "line3: puncts() abc"},
		{"total:  (1.5)", "total:  mixed_number()"},
	}
	for _, tt := range tests {
		if got := LineSnippet(tt.line); got != tt.expected {
			t.Errorf("For %q expected %q, got %q", tt.line, tt.expected, got)
		}
	}
}
