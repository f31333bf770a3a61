package template

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

const fruitsSnippet = `fruits    meat      drinks
start() letters(var_fruits)  letters(var_meat)  word(var_drinks, at_most_1_phrase_occurrences) end() -> record
start() letters(var_fruits)  letters(var_meat) end(space) -> record
start() letters(var_fruits) space(repetition_10_15) word(var_drinks, at_most_1_phrase_occurrences) end() -> record`

const fruitsData = `fruits    meat      drinks
------    --------  -------
orange    pork      water
peach               pepsi soda
mango     chicken`

func TestBuilder_Template(t *testing.T) {
	b, err := New(fruitsSnippet, WithCreatedAt(created))
	require.NoError(t, err)

	want := `################################################################################
# Template is generated by patgen
# Created date: 2026-10-18
################################################################################
Value fruits ([a-zA-Z]+)
Value meat ([a-zA-Z]+)
Value drinks ([a-zA-Z][a-zA-Z0-9]*( [a-zA-Z][a-zA-Z0-9]*){0,1})

Start
  ^fruits +meat +drinks
  ^${fruits} +${meat} +${drinks}$$ -> Record
  ^${fruits} +${meat} *$$ -> Record
  ^${fruits}  {10,15} ${drinks}$$ -> Record`
	assert.Equal(t, want, b.Template())
	assert.True(t, strings.HasPrefix(b.BareTemplate(), "Value fruits"))
	assert.Len(t, b.Variables(), 3)
	assert.NotNil(t, b.Parser())
}

func TestBuilder_Comment(t *testing.T) {
	b, err := New("digits(var_n)",
		WithCreatedAt(created),
		WithCompany("ACME"),
		WithEmail("dev@example.com"),
		WithDescription("first line\nsecond line"),
	)
	require.NoError(t, err)

	want := `################################################################################
# Template is generated by patgen
# Created by  : ACME
# Email       : dev@example.com
# Company     : ACME
# Created date: 2026-10-18
# Description : first line
#     second line
################################################################################
Value n (\d+)

Start
  ^${n}`
	assert.Equal(t, want, b.Template())
}

func TestBuilder_GeneratedHeaderIsIgnored(t *testing.T) {
	first, err := New("digits(var_n)", WithCreatedAt(created), WithAuthor("someone"))
	require.NoError(t, err)

	header := strings.SplitAfter(first.Template(), "################################################################################\n")
	require.Len(t, header, 3)
	b, err := New(header[0]+header[1]+"digits(var_n)", WithCreatedAt(created))
	require.NoError(t, err)
	assert.Equal(t, []string{`  ^${n}`}, b.Statements())
}

func TestBuilder_States(t *testing.T) {
	snippet := `index     col1            col2 -> Table
Table
start() digit(var_index)  non_whitespaces(var_col1)  mixed_word(var_col2) end() -> record
line k: digits() blab blab -> EOF`

	b, err := New(snippet, WithCreatedAt(created))
	require.NoError(t, err)
	assert.Equal(t, `Value index (\d)
Value col1 (\S+)
Value col2 ([\x21-\x7e]*[a-zA-Z0-9][\x21-\x7e]*)

Start
  ^index +col1 +col2 -> Table

Table
  ^${index} +${col1} +${col2}$$ -> Record
  ^line k: (\d+) blab blab -> EOF`, b.BareTemplate())

	data := `line 1: blab 123 blab
line 2: 1.1.2 blab blab
index     col1            col2
1         item1.1         item1.2
2         item2.1         item2.2
3         ?               item3.2
line k: 123 blab blab
index     col1            col2
4         item4.1         item4.2`
	ok, err := b.Verify(data, VerifyOptions{ExpectedResult: []map[string]string{
		{"index": "1", "col1": "item1.1", "col2": "item1.2"},
		{"index": "2", "col1": "item2.1", "col2": "item2.2"},
		{"index": "3", "col1": "?", "col2": "item3.2"},
	}})
	require.NoError(t, err)
	assert.True(t, ok, b.VerifyMessage())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := New("fruits    meat      drinks")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected ErrInvalidFormat, got %v", err)
	}

	_, err = New("letters(var_a) digits(var_a)")
	if !errors.Is(err, ErrBuild) {
		t.Errorf("Expected ErrBuild, got %v", err)
	}

	_, err = New("ignorecase__ letters(var_a)")
	if !errors.Is(err, ErrParsedLine) {
		t.Errorf("Expected ErrParsedLine, got %v", err)
	}
}

func TestBuilder_Debug(t *testing.T) {
	b, err := New("letters(var_a) digits(var_a)", WithDebug(true), WithCreatedAt(created))
	require.NoError(t, err)
	assert.Empty(t, b.Template())
	assert.True(t, strings.HasPrefix(b.BadTemplate(), "# line "), b.BadTemplate())
	assert.Contains(t, b.BadTemplate(), "duplicate value name")
	assert.Nil(t, b.Parser())

	_, err = b.Verify("abc 1", VerifyOptions{})
	assert.ErrorIs(t, err, ErrBuild)
}

func TestGenerate(t *testing.T) {
	tmpl, err := Generate(fruitsSnippet)
	require.NoError(t, err)
	assert.Contains(t, tmpl, "Value drinks (")
	assert.Contains(t, tmpl, "# Created date: ")
}
