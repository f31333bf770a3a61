// Package lineref locates a line among example lines and renders a line
// that anchors a template as a fixed snippet.
package lineref

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Hanaasagi/patgen/pkg/ndiff"
	"github.com/Hanaasagi/patgen/pkg/pattern"
)

const (
	wildcardPrefix = "--wildcard "
	regexPrefix    = "--regex "
)

// ErrReference is returned for a reference that is neither an index nor a
// search string.
var ErrReference = errors.New("invalid line reference")

// generalized lists the categories rendered as a placeholder instead of
// their literal text.
var generalized = map[pattern.Category]bool{
	pattern.Digit:       true,
	pattern.Digits:      true,
	pattern.Number:      true,
	pattern.MixedNumber: true,
	pattern.Punct:       true,
	pattern.Puncts:      true,
}

// Position resolves ref to a line index. An int is an index, negative
// values counting from the end. A string is a substring search, or a
// wildcard or regex search when prefixed with "--wildcard " or "--regex ".
// The bool is false when nothing matches.
func Position(lines []string, ref any) (int, bool, error) {
	switch v := ref.(type) {
	case nil:
		return 0, false, nil
	case int:
		if v < 0 {
			v += len(lines)
		}
		if v < 0 || v >= len(lines) {
			return 0, false, nil
		}
		return v, true, nil
	case string:
		match, err := matcher(v)
		if err != nil {
			return 0, false, err
		}
		for i, line := range lines {
			if match(line) {
				return i, true, nil
			}
		}
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%w: %T", ErrReference, ref)
}

func matcher(ref string) (func(string) bool, error) {
	var expr string
	switch {
	case strings.HasPrefix(ref, wildcardPrefix):
		expr = WildcardToRegex(strings.TrimPrefix(ref, wildcardPrefix))
	case strings.HasPrefix(ref, regexPrefix):
		expr = strings.TrimPrefix(ref, regexPrefix)
	default:
		return func(line string) bool { return strings.Contains(line, ref) }, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReference, err)
	}
	return re.MatchString, nil
}

// WildcardToRegex converts a wildcard: * matches any run, ? one character.
// Bracket classes such as [[:digit:]] and {n,m} repetitions pass through.
func WildcardToRegex(wildcard string) string {
	var b strings.Builder
	depth := 0
	for _, r := range wildcard {
		switch {
		case r == '[':
			depth++
			b.WriteRune(r)
		case r == ']' && depth > 0:
			depth--
			b.WriteRune(r)
		case depth > 0:
			b.WriteRune(r)
		case r == '*':
			b.WriteString(".*")
		case r == '?':
			b.WriteString(".")
		case strings.ContainsRune(`.()+^$|\`, r):
			b.WriteString(regexp.QuoteMeta(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FixedLineSnippet renders the line found by ref with LineSnippet.
func FixedLineSnippet(lines []string, ref any) (string, error) {
	index, ok, err := Position(lines, ref)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %v matches no line", ErrReference, ref)
	}
	return LineSnippet(lines[index]), nil
}

// LineSnippet keeps the words of a line and turns numbers and punctuation
// runs into placeholders such as digits(). A blank line becomes
// "start() end(space)", or end(whitespace) when it holds other blanks.
func LineSnippet(line string) string {
	tl := ndiff.Tokenize(line)
	if tl.IsBlank() {
		if strings.Trim(line, " ") != "" {
			return "start() end(whitespace)"
		}
		return "start() end(space)"
	}

	var b strings.Builder
	for i, tok := range tl.Tokens {
		if i > 0 {
			b.WriteString(tok.Sep)
		}
		node := pattern.Classify(tok.Text)
		if generalized[node.Category()] {
			b.WriteString(node.SnippetName() + "()")
			continue
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
