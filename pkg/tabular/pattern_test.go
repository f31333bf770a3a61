package tabular

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanaasagi/patgen/pkg/template"
	"github.com/Hanaasagi/patgen/pkg/textfsm"
)

const (
	mixedWord = `[\x21-\x7e]*[a-zA-Z0-9][\x21-\x7e]*`
	word      = `[a-zA-Z][a-zA-Z0-9]*`
)

func TestTable_ToRegex(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		want string
	}{
		{
			name: "multi token column",
			text: lastWriteTimeTable,
			opts: []Option{WithDivider("  "), WithColumnsCount(2), WithHeadersData("LastWriteTime          Name")},
			want: `(?P<lastwritetime>` + mixedWord + `( ` + mixedWord + `){0,2}) +(?P<name>` + mixedWord + `)`,
		},
		{
			name: "sometimes empty middle column",
			text: fruitsTable,
			want: `(?P<fruits>[a-zA-Z]+) (?P<meat>( {10,15})|( *[a-zA-Z]+ *)) (?P<drinks>` + word + `( ` + word + `){0,1})`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.text, tt.opts...)
			require.NoError(t, err)
			got, err := table.ToRegex()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// matchRows applies the regex to every line and returns the trimmed groups.
func matchRows(t *testing.T, expr string, lines []string) []Record {
	t.Helper()
	re := regexp.MustCompile("^" + expr)
	var out []Record
	for _, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("Expected %q to match %s", line, expr)
		}
		rec := Record{}
		for i, name := range re.SubexpNames() {
			if name != "" {
				rec[name] = strings.TrimSpace(m[i])
			}
		}
		out = append(out, rec)
	}
	return out
}

func TestTable_ToRegex_Matches(t *testing.T) {
	table, err := New(fruitsTable)
	require.NoError(t, err)
	expr, err := table.ToRegex()
	require.NoError(t, err)

	lines := strings.Split(fruitsTable, "\n")[1:]
	assert.Equal(t, fruitsRecords, matchRows(t, expr, lines))

	table, err = New(lastWriteTimeTable, WithDivider("  "), WithColumnsCount(2), WithHeadersData("LastWriteTime          Name"))
	require.NoError(t, err)
	expr, err = table.ToRegex()
	require.NoError(t, err)

	got := matchRows(t, expr, strings.Split(lastWriteTimeTable, "\n"))
	assert.Equal(t, Record{"lastwritetime": "LastWriteTime", "name": "Name"}, got[0])
	assert.Equal(t, Record{"lastwritetime": "9/1/2021 6:13:50 AM", "name": "LICENSE"}, got[3])
}

func TestTable_ToRegex_OptionalEdges(t *testing.T) {
	text := "a        b       c\n-------- ------- -------\nval1.1   val1.2  val1.3\n         val2.2  val2.3\nval3.1   val3.2"
	table, err := New(text)
	require.NoError(t, err)
	expr, err := table.ToRegex()
	require.NoError(t, err)

	want := `(?P<a>` + mixedWord + `)? *(?P<b>` + mixedWord + `)(?: +(?P<c>` + mixedWord + `))?`
	assert.Equal(t, want, expr)

	got := matchRows(t, expr, strings.Split(text, "\n")[2:])
	assert.Equal(t, []Record{
		{"a": "val1.1", "b": "val1.2", "c": "val1.3"},
		{"a": "", "b": "val2.2", "c": "val2.3"},
		{"a": "val3.1", "b": "val3.2", "c": ""},
	}, got)
}

func TestTable_ToTemplateSnippet(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		want string
	}{
		{
			name: "group or phrase",
			text: `fruits    meat      drinks
------    --------  -------
orange    pork      water
peach               pepsi soda
mango     chicken`,
			want: `fruits    meat      drinks
start() letters(var_fruits)  letters(var_meat)  word(var_drinks, at_most_1_phrase_occurrences) end() -> record
start() letters(var_fruits)  letters(var_meat) end(space) -> record
start() letters(var_fruits) space(repetition_10_15) word(var_drinks, at_most_1_phrase_occurrences) end() -> record`,
		},
		{
			name: "headers data",
			text: lastWriteTimeTable,
			opts: []Option{WithDivider("  "), WithColumnsCount(2), WithHeadersData("LastWriteTime          Name")},
			want: `LastWriteTime          Name
start() mixed_word(var_lastwritetime, at_most_2_phrase_occurrences)  mixed_word(var_name) end() -> record`,
		},
		{
			name: "line range",
			text: `line 1: blab 123 blab
line 2: 1.1.2 blab blab
index     col1            col2
1         item1.1         item1.2
2         item2.1         item2.2
3         ?               item3.2
line k: 123 blab blab
index     col1            col2
4         item4.1         item4.2`,
			opts: []Option{WithColumnWidths(10, 15), WithLineRange(2, 6)},
			want: `index     col1            col2 -> Table
Table
start() digit(var_index)  non_whitespaces(var_col1)  mixed_word(var_col2) end() -> record
line k: digits() blab blab -> EOF`,
		},
		{
			name: "every column sometimes empty",
			text: `one       two       three
--------  --------  ----------
item1.1   item1.2   item1.3
item2.1   item2.2
item3.1             item3.3
          item4.2   item4.3
item5.1
          item6.2
                    item7.3`,
			want: `one       two       three
start() mixed_word(var_one)  mixed_word(var_two)  mixed_word(var_three) end() -> record
start() mixed_word(var_one)  mixed_word(var_two) end(space) -> record
start() mixed_word(var_one) space(repetition_10_13) mixed_word(var_three) end() -> record
start() mixed_word(var_one) end(space) -> record
start() space(repetition_8_10) mixed_word(var_two)  mixed_word(var_three) end() -> record
start() space(repetition_8_10) mixed_word(var_two) end(space) -> record
start() space(repetition_18_20) mixed_word(var_three) end() -> record`,
		},
		{
			name: "max width",
			text: `a        b       c
-------- ------- -------
val1.1   val1.2  val1.3
         val2.2  val2.3
val3.1           val3.3
                 val4.3
val5.1   val5.2
         val6.2
val7.1`,
			want: `a        b       c
start() mixed_word(var_a)  mixed_word(var_b)  mixed_word(var_c) end() -> record
start() mixed_word(var_a)  mixed_word(var_b) end(space) -> record
start() mixed_word(var_a) space(repetition_8_11) mixed_word(var_c) end() -> record
start() mixed_word(var_a) end(space) -> record
start() space(repetition_7_9) mixed_word(var_b)  mixed_word(var_c) end() -> record
start() space(repetition_7_9) mixed_word(var_b) end(space) -> record
start() space(repetition_15_17) mixed_word(var_c) end() -> record`,
		},
		{
			name: "trailing blanks",
			text: "a        b      \n-------- -------\nval1.1   val1.2\n         val2.2",
			want: `a        b      
start() mixed_word(var_a)  mixed_word(var_b) end(space) -> record
start() space(repetition_7_9) mixed_word(var_b) end(space) -> record`,
		},
		{
			name: "pipes",
			text: "fruits   | meat    | drinks\n---------|---------|------------\norange   | pork    | water\npeach    |         | pepsi soda",
			opts: []Option{WithDivider("|")},
			want: `fruits   | meat    | drinks
start() letters(var_fruits)zero_or_spaces()|zero_or_spaces()letters(var_meat)zero_or_spaces()|zero_or_spaces()word(var_drinks, at_most_1_phrase_occurrences) end(space) -> record
start() letters(var_fruits)zero_or_spaces()|zero_or_spaces()zero_or_spaces()|zero_or_spaces()word(var_drinks, at_most_1_phrase_occurrences) end(space) -> record`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.text, tt.opts...)
			require.NoError(t, err)
			got, err := table.ToTemplateSnippet()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const oneLineTable = `a        b       c
-------- ------- -------------
val1.1   val1.2  val1.3
<user-marker-one-line>val2.1-very-long-text
         val2.2  val2.3
val3.1   val3.2  val3.3`

const multiLineTable = `a        b       c
-------- ------- -------------
val1.1   val1.2  val1.3
<user-marker-multi-line>val2.1   val2.2  val2.3
                 continue-val2.4
                 continue-val2.5
val3.1   val3.2  val3.3`

func TestTable_Markers(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		opts    []Option
		snippet string
		records []Record
	}{
		{
			name: "one line",
			text: oneLineTable,
			snippet: `a        b       c
start() mixed_word(var_a) end(space) -> Next
start() space(repetition_7_9) mixed_word(var_b)  mixed_word(var_c) end() -> record
start() mixed_word(var_a)  mixed_word(var_b)  mixed_word(var_c) end() -> record`,
			records: []Record{
				{"a": "val1.1", "b": "val1.2", "c": "val1.3"},
				{"a": "val2.1-very-long-text", "b": "val2.2", "c": "val2.3"},
				{"a": "val3.1", "b": "val3.2", "c": "val3.3"},
			},
		},
		{
			name: "multi line",
			text: multiLineTable,
			snippet: `a        b       c
start() mixed_word()zero_or_spaces() -> continue.record
start() mixed_word(var_a)  mixed_word(var_b)  mixed_word(var_c, meta_data_list) end() -> continue
start() space(repetition_15_17) mixed_word(var_c, meta_data_list) end() -> continue`,
			records: []Record{
				{"a": "val1.1", "b": "val1.2", "c": "val1.3"},
				{"a": "val2.1", "b": "val2.2", "c": "val2.3, continue-val2.4, continue-val2.5"},
				{"a": "val3.1", "b": "val3.2", "c": "val3.3"},
			},
		},
		{
			name: "custom marker",
			text: strings.ReplaceAll(oneLineTable, DefaultOneLineMarker, ">>"),
			opts: []Option{WithMarkers(">>", "")},
			snippet: `a        b       c
start() mixed_word(var_a) end(space) -> Next
start() space(repetition_7_9) mixed_word(var_b)  mixed_word(var_c) end() -> record
start() mixed_word(var_a)  mixed_word(var_b)  mixed_word(var_c) end() -> record`,
			records: []Record{
				{"a": "val1.1", "b": "val1.2", "c": "val1.3"},
				{"a": "val2.1-very-long-text", "b": "val2.2", "c": "val2.3"},
				{"a": "val3.1", "b": "val3.2", "c": "val3.3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.text, tt.opts...)
			require.NoError(t, err)
			got, err := table.ToTemplateSnippet()
			require.NoError(t, err)
			assert.Equal(t, tt.snippet, got)
			assert.Equal(t, tt.records, table.Records())
		})
	}
}

// the template built from a marked table parses the unmarked text into the
// records of the table
func TestTable_MarkersParse(t *testing.T) {
	for _, text := range []string{oneLineTable, multiLineTable} {
		table, err := New(text)
		require.NoError(t, err)
		snip, err := table.ToTemplateSnippet()
		require.NoError(t, err)

		tmpl, err := template.Generate(snip)
		require.NoError(t, err)
		parser, err := textfsm.Parse(tmpl)
		require.NoError(t, err)

		plain := strings.NewReplacer(DefaultOneLineMarker, "", DefaultMultiLineMarker, "").Replace(text)
		got, err := parser.ParseText(plain)
		require.NoError(t, err)

		var want []map[string]string
		for _, rec := range table.Records() {
			want = append(want, map[string]string(rec))
		}
		assert.Equal(t, want, got)
	}
}

func TestTable_MarkersDisabled(t *testing.T) {
	table, err := New(strings.ReplaceAll(oneLineTable, DefaultOneLineMarker, ""), WithMarkers("", ""))
	require.NoError(t, err)
	records := table.Records()
	require.Len(t, records, 4)
	if records[2]["a"] != "" || records[2]["b"] != "val2.2" {
		t.Errorf("Expected the unmarked tail to stay a row, got %v", records[2])
	}
}
