package pattern

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		data        []string
		category    Category
		snippetName string
		pattern     string
	}{
		{"digit", []string{"1"}, Digit, "digit", `\d`},
		{"digits", []string{"123"}, Digits, "digits", `\d+`},
		{"number", []string{"1.5"}, Number, "number", `\d*[.]?\d+`},
		{"mixed number in parenthesis", []string{"(1.1)"}, MixedNumber, "mixed_number", mixedNumberFragment},
		{"letter", []string{"a"}, Letter, "letter", `[a-zA-Z]`},
		{"letters", []string{"abc"}, Letters, "letters", `[a-zA-Z]+`},
		{"punct", []string{"-"}, Punct, "punct", punctFragment},
		{"puncts", []string{"(),"}, Puncts, "puncts", punctsFragment},
		{"word", []string{"a1"}, Word, "word", wordFragment},
		{"mixed word", []string{"1.1.1.1"}, MixedWord, "mixed_word", mixedWordFragment},
		{"mixed word with puncts", []string{"-a-"}, MixedWord, "mixed_word", mixedWordFragment},
		{"puncts phrase", []string{"( ) ,"}, PunctsGroup, "puncts_phrase",
			punctsFragment + `( ` + punctsFragment + `)+`},
		{"puncts group", []string{"--  ---- ++++++"}, PunctsGroup, "puncts_group",
			punctsFragment + `( +` + punctsFragment + `)+`},
		{"puncts or phrase", []string{"--", "== +++"}, PunctsGroup, "puncts_or_phrase",
			punctsFragment + `( ` + punctsFragment + `)*`},
		{"puncts list", []string{"-", "++"}, Puncts, "puncts", punctsFragment},
		{"phrase", []string{"a1 b2"}, Words, "phrase", wordFragment + `( ` + wordFragment + `)+`},
		{"mixed phrase", []string{"1.1.1.1 2::2"}, MixedWords, "mixed_phrase",
			mixedWordFragment + `( ` + mixedWordFragment + `)+`},
		{"words", []string{"var1", "var1 var2"}, Words, "words", wordFragment + `( ` + wordFragment + `)*`},
		{"mixed words", []string{"1.1.1.1", "1.1.1.1 2.2.2.2"}, MixedWords, "mixed_words",
			mixedWordFragment + `( ` + mixedWordFragment + `)*`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := Classify(tt.data...)
			if node.Category() != tt.category {
				t.Errorf("Expected category %s, got %s", tt.category, node.Category())
			}
			if node.SnippetName() != tt.snippetName {
				t.Errorf("Expected snippet name %q, got %q", tt.snippetName, node.SnippetName())
			}
			if node.Pattern() != tt.pattern {
				t.Errorf("Expected pattern %q, got %q", tt.pattern, node.Pattern())
			}
		})
	}
}

func TestClassify_Unknown(t *testing.T) {
	for _, data := range [][]string{nil, {""}, {"a\tb"}, {"a", ""}} {
		node := Classify(data...)
		if node.Category() != Unknown || !node.IsEmpty() {
			t.Errorf("Expected unknown node for %q, got %s", data, node)
		}
	}
}

func TestNew_Strict(t *testing.T) {
	tests := []struct {
		category Category
		data     string
	}{
		{Digit, "123"},
		{Letter, "ab"},
		{Punct, "1."},
		{Words, "a1 1b"},
	}
	for _, tt := range tests {
		if node := New(tt.category, tt.data); !node.IsEmpty() {
			t.Errorf("Expected %s(%q) to be empty, got pattern %q", tt.category, tt.data, node.Pattern())
		}
	}
	if node := New(Digits, "123"); node.Pattern() != `\d+` {
		t.Errorf("Expected digits pattern, got %q", node.Pattern())
	}
}

func TestNew_PluralNeedsRepetition(t *testing.T) {
	tests := []struct {
		category Category
		singular []string
		plural   []string
	}{
		{Digits, []string{"1"}, []string{"1", "12"}},
		{Letters, []string{"a"}, []string{"ab"}},
		{Puncts, []string{"-", "+"}, []string{"-", "++"}},
		{NonWhitespaces, []string{"é"}, []string{"é1"}},
		{Words, []string{"a"}, []string{"a", "a b"}},
		{MixedWords, []string{"1.1"}, []string{"1.1 a"}},
		{PunctsGroup, []string{"-"}, []string{"- +"}},
		{NonWhitespacesGroup, []string{"a"}, []string{"a é"}},
	}
	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			if node := New(tt.category, tt.singular...); !node.IsEmpty() {
				t.Errorf("Expected empty pattern for %q, got %q", tt.singular, node.Pattern())
			}
			if node := New(tt.category, tt.plural...); node.IsEmpty() {
				t.Errorf("Expected a pattern for %q, got none", tt.plural)
			}
		})
	}
}

func TestNode_Snippet(t *testing.T) {
	tests := []struct {
		name     string
		data     []string
		variable string
		expected string
	}{
		{"with var", []string{"1"}, "v1", "digit(var=v1, value=1)"},
		{"without var", []string{"1"}, "", "digit(value=1)"},
		{"parenthesis", []string{"( ) ,"}, "v0",
			"puncts_phrase(var=v0, value=_SYMBOL_LEFT_PARENTHESIS_ _SYMBOL_RIGHT_PARENTHESIS_ ,)"},
		{"first value only", []string{"-", "++"}, "v2", "puncts(var=v2, value=-)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.data...).Snippet(tt.variable)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPatternForName(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"digits", `\d+`},
		{"phrase", wordFragment + `( ` + wordFragment + `)+`},
		{"word_or_group", wordFragment + `( +` + wordFragment + `)*`},
		{"non_whitespaces_or_group", `\S+( +\S+)*`},
		{"puncts_or_phrase", punctsFragment + `( ` + punctsFragment + `)*`},
	}
	for _, tt := range tests {
		got, ok := PatternForName(tt.name)
		if !ok || got != tt.pattern {
			t.Errorf("Expected %q for %s, got %q (found=%v)", tt.pattern, tt.name, got, ok)
		}
	}

	if _, ok := PatternForName("digitz"); ok {
		t.Error("Expected unknown name to be rejected")
	}
	if cat, ok := CategoryForName("mixed_phrase"); !ok || cat != MixedWords {
		t.Errorf("Expected mixed_words, got %s", cat)
	}
}
