package pattern

// Category is one tag of the text category lattice.
type Category int

const (
	Unknown Category = iota
	Digit
	Digits
	Number
	MixedNumber
	Letter
	Letters
	AlphabetNumeric
	Punct
	Puncts
	PunctsGroup
	Graph
	Word
	Words
	MixedWord
	MixedWords
	NonWhitespace
	NonWhitespaces
	NonWhitespacesGroup
)

var categoryNames = [...]string{
	Unknown:             "unknown",
	Digit:               "digit",
	Digits:              "digits",
	Number:              "number",
	MixedNumber:         "mixed_number",
	Letter:              "letter",
	Letters:             "letters",
	AlphabetNumeric:     "alphabet_numeric",
	Punct:               "punct",
	Puncts:              "puncts",
	PunctsGroup:         "puncts_group",
	Graph:               "graph",
	Word:                "word",
	Words:               "words",
	MixedWord:           "mixed_word",
	MixedWords:          "mixed_words",
	NonWhitespace:       "non_whitespace",
	NonWhitespaces:      "non_whitespaces",
	NonWhitespacesGroup: "non_whitespaces_group",
}

// classifyOrder is the order in which Classify tries categories, narrowest first.
var classifyOrder = []Category{
	Digit, Digits, Number, MixedNumber,
	Letter, Letters, AlphabetNumeric,
	Punct, Puncts, Graph,
	Word, MixedWord,
	NonWhitespace, NonWhitespaces,
	Words, MixedWords, PunctsGroup, NonWhitespacesGroup,
}

// Categories returns every known category in classification order.
func Categories() []Category {
	out := make([]Category, len(classifyOrder))
	copy(out, classifyOrder)
	return out
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[Unknown]
	}
	return categoryNames[c]
}

// Valid reports whether c is a lattice category.
func (c Category) Valid() bool {
	return c > Unknown && int(c) < len(categoryNames)
}

// IsMultiToken reports whether c matches space separated repetitions.
func (c Category) IsMultiToken() bool {
	switch c {
	case Words, MixedWords, PunctsGroup, NonWhitespacesGroup:
		return true
	}
	return false
}

// IsPlural reports whether c repeats a singular category, by character
// (digits, letters, puncts, non_whitespaces) or by token.
func (c Category) IsPlural() bool {
	switch c {
	case Digits, Letters, Puncts, NonWhitespaces:
		return true
	}
	return c.IsMultiToken()
}

// Base returns the single token category repeated by a multi token category.
// Single token categories return themselves.
func (c Category) Base() Category {
	switch c {
	case Words:
		return Word
	case MixedWords:
		return MixedWord
	case PunctsGroup:
		return Puncts
	case NonWhitespacesGroup:
		return NonWhitespaces
	}
	return c
}

// ParseCategory looks a category up by its snake_case name.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if i > 0 && n == name {
			return Category(i), true
		}
	}
	return Unknown, false
}
