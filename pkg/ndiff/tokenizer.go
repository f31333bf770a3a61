package ndiff

import (
	"strings"
	"unicode"
)

// Token is one run of non-blank characters. Start and End are byte offsets
// into the line, End exclusive. Sep holds the whitespace in front of the
// token and is empty for the first token.
type Token struct {
	Text  string
	Start int
	End   int
	Sep   string
}

// TokenizedLine keeps everything needed to rebuild a line from its tokens.
type TokenizedLine struct {
	Text     string
	Leading  string
	Trailing string
	Tokens   []Token
}

// Tokenize splits a line on whitespace runs.
func Tokenize(line string) TokenizedLine {
	tl := TokenizedLine{Text: line}
	start, prevEnd := -1, 0
	for i, char := range line {
		if unicode.IsSpace(char) {
			if start >= 0 {
				tl.Tokens = append(tl.Tokens, newToken(line, start, i, prevEnd, len(tl.Tokens)))
				prevEnd = i
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tl.Tokens = append(tl.Tokens, newToken(line, start, len(line), prevEnd, len(tl.Tokens)))
		prevEnd = len(line)
	}

	if len(tl.Tokens) == 0 {
		tl.Leading = line
		return tl
	}
	tl.Leading = line[:tl.Tokens[0].Start]
	tl.Trailing = line[prevEnd:]
	return tl
}

func newToken(line string, start, end, prevEnd, index int) Token {
	tok := Token{Text: line[start:end], Start: start, End: end}
	if index > 0 {
		tok.Sep = line[prevEnd:start]
	}
	return tok
}

// Texts returns the text of every token.
func (tl TokenizedLine) Texts() []string {
	texts := make([]string, len(tl.Tokens))
	for i, tok := range tl.Tokens {
		texts[i] = tok.Text
	}
	return texts
}

// Span returns the raw text covering tokens [from, to).
func (tl TokenizedLine) Span(from, to int) string {
	if from >= to {
		return ""
	}
	return tl.Text[tl.Tokens[from].Start:tl.Tokens[to-1].End]
}

// Value returns tokens [from, to) joined by one space, or two spaces where
// the original separator was wider than a single space.
func (tl TokenizedLine) Value(from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		tok := tl.Tokens[i]
		if i > from {
			if tok.Sep == " " {
				b.WriteString(" ")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// IsBlank reports whether the line holds no token.
func (tl TokenizedLine) IsBlank() bool {
	return len(tl.Tokens) == 0
}
