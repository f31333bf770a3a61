package template

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// VerifyOptions sets what a parse result is checked against.
type VerifyOptions struct {
	// ExpectedRows is the number of records to expect; 0 skips the check.
	ExpectedRows int
	// ExpectedResult is the exact result to expect; nil skips the check.
	ExpectedResult []map[string]string
	// IgnoreSpace trims every parsed value before the result is compared.
	IgnoreSpace bool
}

// Verify parses testData with the compiled template. A result that does not
// meet opts yields false and a message; only an engine failure is an error.
func (b *Builder) Verify(testData string, opts VerifyOptions) (bool, error) {
	b.message = ""
	if testData == "" {
		b.message = msgEmptyTestData
		return false, nil
	}
	if b.parser == nil {
		return false, fmt.Errorf("%w: no compiled template", ErrBuild)
	}

	rows, err := b.parser.ParseText(testData)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if len(rows) == 0 {
		b.message = msgNoRecord
		return false, nil
	}

	verified := true
	var msgs []string
	if opts.ExpectedRows > 0 {
		if len(rows) != opts.ExpectedRows {
			verified = false
			msgs = append(msgs, fmt.Sprintf(msgRowCountDiffer, len(rows), opts.ExpectedRows))
		} else {
			msgs = append(msgs, fmt.Sprintf(msgRowCountEqual, opts.ExpectedRows))
		}
	}
	if opts.ExpectedResult != nil {
		if opts.IgnoreSpace {
			rows = trimRows(rows)
		}
		if slices.EqualFunc(rows, opts.ExpectedResult, func(a, b map[string]string) bool { return maps.Equal(a, b) }) {
			msgs = append(msgs, msgResultEqual)
		} else {
			verified = false
			msgs = append(msgs, msgResultDiffer)
		}
	}
	if verified && len(msgs) == 0 {
		msgs = append(msgs, msgHasRecords)
	}
	b.message = strings.Join(msgs, "\n")
	return verified, nil
}

// VerifyMessage describes the outcome of the last Verify.
func (b *Builder) VerifyMessage() string { return b.message }

func trimRows(rows []map[string]string) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		trimmed := make(map[string]string, len(row))
		for k, v := range row {
			trimmed[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
		out[i] = trimmed
	}
	return out
}

// Generate returns the template built from a snippet.
func Generate(snippet string, opts ...Option) (string, error) {
	b, err := New(snippet, opts...)
	if err != nil {
		return "", err
	}
	return b.Template(), nil
}

// Verify builds the template of a snippet, verifies it against testData and
// returns the verification message along with the verdict.
func Verify(snippet, testData string, opts VerifyOptions) (bool, string, error) {
	b, err := New(snippet)
	if err != nil {
		return false, "", err
	}
	ok, err := b.Verify(testData, opts)
	return ok, b.VerifyMessage(), err
}
