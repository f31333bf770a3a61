package ndiff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	letters = `[a-zA-Z]+`
	word    = `[a-zA-Z][a-zA-Z0-9]*`
)

func TestLinePattern_Prepare(t *testing.T) {
	tests := []struct {
		lines    []string
		expected int
	}{
		{[]string{"line 1", "line 2"}, 2},
		{[]string{"line 1", "line 2", "line 3"}, 3},
		{[]string{"line 1", "", "line 3", "line4"}, 3},
		{[]string{"line 1", "", "      ", "line4"}, 2},
	}
	for _, tt := range tests {
		lp := &LinePattern{lines: tt.lines}
		require.NoError(t, lp.Prepare())
		assert.Len(t, lp.prepared, tt.expected)
	}
}

func TestLinePattern_InsufficientLines(t *testing.T) {
	for _, lines := range [][]string{
		{"line 1", ""},
		{" ", "line2"},
		{" ", "    "},
		{"", ""},
	} {
		_, err := NewLinePattern(lines)
		assert.True(t, errors.Is(err, ErrInsufficientLines), "%q", lines)
	}
}

func TestPatternBetween(t *testing.T) {
	tests := []struct {
		a, b     string
		expected string
	}{
		{"a", "@", `(?P<v0>[\x21-\x7e])`},
		{"a b", "@", `(?P<v0>\S+( +\S+)*)`},
		{"a b", "x", "(?P<v0>" + word + "( +" + word + ")*)"},
		{
			"line one is a first line",
			"line ore is a second line",
			"line +(?P<v0>" + letters + ") +is +a +(?P<v1>" + letters + ") +line",
		},
		{
			"  line one is a first line",
			"line ore is a second line",
			" *line +(?P<v0>" + letters + ") +is +a +(?P<v1>" + letters + ") +line",
		},
		{
			"  line one is a first line",
			"    line ore is a second line",
			" +line +(?P<v0>" + letters + ") +is +a +(?P<v1>" + letters + ") +line",
		},
		{
			"  line one is a first line  ",
			"    line ore is a second line",
			" +line +(?P<v0>" + letters + ") +is +a +(?P<v1>" + letters + ") +line *",
		},
		{
			"this line one is a first line",
			"line ore is a second bad line",
			"(?P<v0>(" + letters + ")|)( +)?line +(?P<v1>" + letters + ") +is +a +(?P<v2>" +
				word + "( +" + word + ")*) +line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.a, func(t *testing.T) {
			got, err := PatternBetween(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLinePattern_Generated(t *testing.T) {
	words := "(?P<v0>" + word + "( " + word + ")*)"
	phrase := "(?P<v1>" + word + "( " + word + ")+)"
	tests := []struct {
		name    string
		lines   []string
		pattern string
		snippet string
	}{
		{
			"two lines",
			[]string{"this is a pen", "this is the yellow pen"},
			"this is " + words + " pen",
			"start() this is words(var_v0) pen end()",
		},
		{
			"three lines",
			[]string{"this is a pen", "this is the yellow pen", "this is the good yellow pen"},
			"this is " + words + " pen",
			"start() this is words(var_v0) pen end()",
		},
		{
			"four lines",
			[]string{"this is a pen", "this is the yellow pen", "this is the good yellow pen", "that is a pencil"},
			"(?P<v0>" + letters + ") is " + phrase,
			"start() letters(var_v0) is phrase(var_v1) end()",
		},
		{
			"some leading spaces",
			[]string{"this is a pen", "  this is the yellow pen", "this is the good yellow pen", "that is a pencil"},
			" *(?P<v0>" + letters + ") is " + phrase,
			"start(space) letters(var_v0) is phrase(var_v1) end()",
		},
		{
			"some trailing spaces",
			[]string{"this is a pen", "this is the yellow pen", "this is the good yellow pen  ", " that is a pencil"},
			" *(?P<v0>" + letters + ") is " + phrase + " *",
			"start(space) letters(var_v0) is phrase(var_v1) end(space)",
		},
		{
			"all leading spaces",
			[]string{"  this is a pen", "    this is the yellow pen", "  this is the good yellow pen ", "    that is a pencil"},
			" +(?P<v0>" + letters + ") is " + phrase + " *",
			"start(spaces) letters(var_v0) is phrase(var_v1) end(space)",
		},
		{
			"all trailing spaces",
			[]string{"  this is a pen               ", "    this is the yellow pen    ",
				"  this is the good yellow pen ", "    that is a pencil          "},
			" +(?P<v0>" + letters + ") is " + phrase + " +",
			"start(spaces) letters(var_v0) is phrase(var_v1) end(spaces)",
		},
		{
			"tab",
			[]string{"this \t is a pen", "this is the yellow pen"},
			`this\s+is ` + words + " pen",
			"start() this\t is words(var_v0) pen end()",
		},
		{
			"optional letters",
			[]string{"this is yellow half \t pencil", "this is red half pencil", "this is green half pencil", "this is half pencil"},
			"this is (?P<v0>(" + letters + ")|)( )?half\\s+pencil",
			"start() this is letters(var_v0, or_empty) half\t pencil end()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, err := NewLinePattern(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, lp.Pattern())
			assert.Equal(t, tt.snippet, lp.Snippet())
			assert.Equal(t, Finalized, lp.State())
		})
	}
}

func TestLinePattern_Snippets(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		snippet string
	}{
		{
			"process table",
			[]string{
				"12345 | ttys000  |  0:00.55 | /bin/zsh --login -i",
				" 3344 | ttys001  |  0:01.23 | -zsh",
			},
			"start(space) digits(var_v0) | word(var_v1)  |  mixed_number(var_v2) | mixed_words(var_v3) end()",
		},
		{
			"ipv6 with word and digits",
			[]string{"ipv6_addr: a::b % 16", "ipv6_addr: a::c % 32"},
			"start() ipv6_addr: mixed_word(var_v0) % digits(var_v1) end()",
		},
		{
			"ipv6 with phrase",
			[]string{"ipv6_addr: 1::2 % 32", "ipv6_addr: 1::3 / 33"},
			"start() ipv6_addr: non_whitespaces_phrase(var_v0) end()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, err := NewLinePattern(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.snippet, lp.Snippet())
		})
	}
}

func TestLinePattern_LabelAndReset(t *testing.T) {
	lp, err := NewLinePattern([]string{"fruit: apple", "fruit: banana"}, WithLabel("1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"v10"}, lp.Variables())
	assert.Equal(t, "fruit: (?P<v10>"+letters+")", lp.Pattern())

	lp.Reset()
	assert.Equal(t, Init, lp.State())
	assert.Empty(t, lp.Pattern())
	assert.Empty(t, lp.Variables())

	require.NoError(t, lp.Process())
	assert.Equal(t, "start() fruit: letters(var_v10) end()", lp.Snippet())
}

func TestLinePattern_WholeLineChanged(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		pattern string
		snippet string
	}{
		{
			"nothing shared",
			[]string{"x a b", "y", "z a"},
			`(?P<v0>\S+( +\S+)*)`,
			"start() non_whitespaces_or_group(var_v0) end()",
		},
		{
			"single words",
			[]string{"apple", "banana"},
			`(?P<v0>\S+( +\S+)*)`,
			"start() non_whitespaces_or_group(var_v0) end()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lp, err := NewLinePattern(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, lp.Pattern())
			assert.Equal(t, tt.snippet, lp.Snippet())
			for _, line := range tt.lines {
				assert.Regexp(t, "^"+lp.Pattern()+"$", line)
			}
		})
	}

	got, err := PatternBetween("a b", "x")
	require.NoError(t, err)
	assert.Equal(t, "(?P<v0>"+word+"( +"+word+")*)", got)
}
