package pattern

import (
	"regexp"
	"strings"
)

var (
	punctOnly      = regexp.MustCompile(`^` + punctsFragment + `$`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// EscapeLiteral quotes the regex metacharacters of a token. A token made of
// punctuation only has every run of a repeated character compacted to X{2,}.
func EscapeLiteral(token string) string {
	if !punctOnly.MatchString(token) {
		return regexp.QuoteMeta(token)
	}

	var b strings.Builder
	for i := 0; i < len(token); {
		j := i + 1
		for j < len(token) && token[j] == token[i] {
			j++
		}
		b.WriteString(regexp.QuoteMeta(token[i : i+1]))
		if j-i > 1 {
			b.WriteString("{2,}")
		}
		i = j
	}
	return b.String()
}

// EscapeWhitespace renders one run of whitespace. A single space becomes ws,
// longer space runs " +" and any run holding another blank `\s+`. When ws is
// `\s` every run becomes `\s+` except a single space.
func EscapeWhitespace(run, ws string) string {
	if ws == "" {
		ws = " "
	}
	switch {
	case run == " ":
		return ws
	case strings.Trim(run, " ") != "" || ws == `\s`:
		return `\s+`
	default:
		return " +"
	}
}

// EscapeText escapes every token of text and generalizes the whitespace
// between them with EscapeWhitespace.
func EscapeText(text, ws string) string {
	var b strings.Builder
	last := 0
	for _, loc := range whitespaceRuns.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			b.WriteString(EscapeLiteral(text[last:loc[0]]))
		}
		b.WriteString(EscapeWhitespace(text[loc[0]:loc[1]], ws))
		last = loc[1]
	}
	if last < len(text) {
		b.WriteString(EscapeLiteral(text[last:]))
	}
	return b.String()
}
