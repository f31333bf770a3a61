package fuzzymatch

import (
	"testing"
)

// TestExactMatch tests exact fuzzy matching
func TestExactMatch(t *testing.T) {
	matcher := NewFuzzyMatcher(false, 2)
	results := matcher.Match("digits", []string{"digit", "digits", "mixed_words"})
	if len(results) == 0 || results[0].Text != "digits" {
		t.Errorf("Expected 'digits' to match first, got: %+v", results)
	}
}

// TestSubsequenceMatch tests abbreviations of snippet names
func TestSubsequenceMatch(t *testing.T) {
	matcher := NewFuzzyMatcher(false, 0)
	results := matcher.Match("mxnum", []string{"mixed_number", "number", "letters"})
	if len(results) != 1 || results[0].Text != "mixed_number" {
		t.Errorf("Expected only 'mixed_number', got: %+v", results)
	}
}

// TestTypoMatch tests the edit distance fallback
func TestTypoMatch(t *testing.T) {
	matcher := NewFuzzyMatcher(false, 2)
	got := matcher.Suggest("digitz", []string{"letters", "digits", "digit", "graph"}, 2)
	if len(got) != 2 || got[0] != "digits" || got[1] != "digit" {
		t.Errorf("Expected [digits digit], got: %v", got)
	}
}

// TestNoMatch tests that unrelated candidates are dropped
func TestNoMatch(t *testing.T) {
	matcher := NewFuzzyMatcher(true, 1)
	if got := matcher.Suggest("zzz", []string{"word", "words"}, 3); len(got) != 0 {
		t.Errorf("Expected no suggestion, got: %v", got)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"digitz", "digits", 1},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.expected {
			t.Errorf("Expected distance(%q, %q) = %d, got %d", tt.a, tt.b, tt.expected, got)
		}
	}
}
