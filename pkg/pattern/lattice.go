package pattern

// Regex fragments of the single token categories.
const (
	digitFragment          = `\d`
	digitsFragment         = `\d+`
	numberFragment         = `\d*[.]?\d+`
	mixedNumberFragment    = `[+\(\[\$-]?(\d+([,:/-]\d+)*)?[.]?\d+[\]\)%a-zA-Z]*`
	letterFragment         = `[a-zA-Z]`
	lettersFragment        = `[a-zA-Z]+`
	alphabetNumericFrag    = `[a-zA-Z0-9]`
	punctFragment          = `[\x21-\x2f\x3a-\x40\x5b-\x60\x7b-\x7e]`
	punctsFragment         = punctFragment + `+`
	graphFragment          = `[\x21-\x7e]`
	wordFragment           = `[a-zA-Z][a-zA-Z0-9]*`
	mixedWordFragment      = `[\x21-\x7e]*[a-zA-Z0-9][\x21-\x7e]*`
	nonWhitespaceFragment  = `\S`
	nonWhitespacesFragment = `\S+`
)

// categoryInfo is the lattice row of one category.
//
// subsets lists the categories the owner is a subset of (itself included),
// supersets the categories it strictly contains, and aggregate the join with
// every category that is neither.
type categoryInfo struct {
	fragment  string
	subsets   []Category
	supersets []Category
	aggregate map[Category]Category
}

var lattice = map[Category]categoryInfo{
	Digit: {
		fragment: digitFragment,
		subsets: []Category{
			Digit, Digits, Number, MixedNumber, AlphabetNumeric, Graph, Word, Words,
			MixedWord, MixedWords, NonWhitespace, NonWhitespaces, NonWhitespacesGroup,
		},
		aggregate: map[Category]Category{
			Letter:      AlphabetNumeric,
			Letters:     Word,
			Punct:       NonWhitespace,
			Puncts:      NonWhitespaces,
			PunctsGroup: NonWhitespacesGroup,
		},
	},
	Digits: {
		fragment: digitsFragment,
		subsets: []Category{
			Digits, Number, MixedNumber, Word, Words, MixedWord, MixedWords,
			NonWhitespaces, NonWhitespacesGroup,
		},
		supersets: []Category{Digit},
		aggregate: map[Category]Category{
			Letter:          Word,
			Letters:         Word,
			AlphabetNumeric: Word,
			Graph:           MixedWord,
			Punct:           NonWhitespaces,
			Puncts:          NonWhitespaces,
			NonWhitespace:   NonWhitespaces,
			PunctsGroup:     NonWhitespacesGroup,
		},
	},
	Number: {
		fragment:  numberFragment,
		subsets:   []Category{Number, MixedNumber, MixedWord, MixedWords, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Digit, Digits},
		aggregate: numberAggregate,
	},
	MixedNumber: {
		fragment:  mixedNumberFragment,
		subsets:   []Category{MixedNumber, MixedWord, MixedWords, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Digit, Digits, Number},
		aggregate: numberAggregate,
	},
	Letter: {
		fragment: letterFragment,
		subsets: []Category{
			Letter, Letters, AlphabetNumeric, Graph, Word, Words, MixedWord, MixedWords,
			NonWhitespace, NonWhitespaces, NonWhitespacesGroup,
		},
		aggregate: map[Category]Category{
			Digit:       AlphabetNumeric,
			Digits:      Word,
			Number:      MixedWord,
			MixedNumber: MixedWord,
			Punct:       Graph,
			Puncts:      NonWhitespaces,
			PunctsGroup: NonWhitespacesGroup,
		},
	},
	Letters: {
		fragment:  lettersFragment,
		subsets:   []Category{Letters, Word, Words, MixedWord, MixedWords, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Letter},
		aggregate: map[Category]Category{
			Digit:           Word,
			Digits:          Word,
			AlphabetNumeric: Word,
			Number:          MixedWord,
			MixedNumber:     MixedWord,
			Graph:           MixedWord,
			Punct:           NonWhitespaces,
			Puncts:          NonWhitespaces,
			NonWhitespace:   NonWhitespaces,
			PunctsGroup:     NonWhitespacesGroup,
		},
	},
	AlphabetNumeric: {
		fragment: alphabetNumericFrag,
		subsets: []Category{
			AlphabetNumeric, Graph, Word, Words, MixedWord, MixedWords,
			NonWhitespace, NonWhitespaces, NonWhitespacesGroup,
		},
		supersets: []Category{Letter, Digit},
		aggregate: map[Category]Category{
			Digits:      Word,
			Letters:     Word,
			Number:      MixedWord,
			MixedNumber: MixedWord,
			Punct:       NonWhitespace,
			Puncts:      NonWhitespaces,
			PunctsGroup: NonWhitespacesGroup,
		},
	},
	Punct: {
		fragment: punctFragment,
		subsets: []Category{
			Punct, Graph, Puncts, PunctsGroup, MixedWord, MixedWords,
			NonWhitespace, NonWhitespaces, NonWhitespacesGroup,
		},
		aggregate: map[Category]Category{
			Letter:          Graph,
			Digit:           Graph,
			AlphabetNumeric: Graph,
			Letters:         NonWhitespaces,
			Digits:          NonWhitespaces,
			Number:          NonWhitespaces,
			MixedNumber:     NonWhitespaces,
			Word:            NonWhitespaces,
			Words:           NonWhitespacesGroup,
		},
	},
	Puncts: {
		fragment:  punctsFragment,
		subsets:   []Category{Puncts, PunctsGroup, MixedWord, MixedWords, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Punct},
		aggregate: map[Category]Category{
			Letter:          NonWhitespaces,
			Digit:           NonWhitespaces,
			AlphabetNumeric: NonWhitespaces,
			Graph:           NonWhitespaces,
			Letters:         NonWhitespaces,
			Digits:          NonWhitespaces,
			Number:          NonWhitespaces,
			MixedNumber:     NonWhitespaces,
			Word:            NonWhitespaces,
			NonWhitespace:   NonWhitespaces,
			Words:           NonWhitespacesGroup,
		},
	},
	PunctsGroup: {
		subsets:   []Category{PunctsGroup, MixedWords, NonWhitespacesGroup},
		supersets: []Category{Punct, Puncts},
		aggregate: toGroup(
			Digit, Digits, Number, MixedNumber, Letter, Letters, AlphabetNumeric,
			Graph, Word, Words, MixedWord, NonWhitespace, NonWhitespaces,
		),
	},
	Graph: {
		fragment:  graphFragment,
		subsets:   []Category{Graph, MixedWord, MixedWords, NonWhitespace, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Letter, Digit, AlphabetNumeric, Punct},
		aggregate: map[Category]Category{
			Letters:     MixedWord,
			Digits:      MixedWord,
			Number:      MixedWord,
			MixedNumber: MixedWord,
			Word:        MixedWord,
			Words:       MixedWords,
			Puncts:      NonWhitespaces,
			PunctsGroup: NonWhitespacesGroup,
		},
	},
	Word: {
		fragment:  wordFragment,
		subsets:   []Category{Word, Words, MixedWord, MixedWords, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Letter, Letters},
		aggregate: map[Category]Category{
			Graph:           NonWhitespaces,
			Digit:           NonWhitespaces,
			Digits:          NonWhitespaces,
			Number:          NonWhitespaces,
			MixedNumber:     NonWhitespaces,
			NonWhitespace:   NonWhitespaces,
			Punct:           NonWhitespaces,
			Puncts:          NonWhitespaces,
			AlphabetNumeric: NonWhitespaces,
			PunctsGroup:     NonWhitespacesGroup,
		},
	},
	Words: {
		subsets:   []Category{Words, MixedWords, NonWhitespacesGroup},
		supersets: []Category{Letter, Letters, Word},
		aggregate: withEntry(toGroup(
			AlphabetNumeric, Graph, Digit, Digits, Number, MixedNumber,
			NonWhitespace, Punct, Puncts, PunctsGroup, NonWhitespaces,
		), MixedWord, MixedWords),
	},
	MixedWord: {
		fragment: mixedWordFragment,
		subsets:  []Category{MixedWord, MixedWords, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{
			Letter, Letters, Digit, Digits, Number, MixedNumber, AlphabetNumeric, Word,
		},
		aggregate: map[Category]Category{
			Words:         MixedWords,
			Graph:         NonWhitespaces,
			NonWhitespace: NonWhitespaces,
			Punct:         NonWhitespaces,
			Puncts:        NonWhitespaces,
			PunctsGroup:   NonWhitespacesGroup,
		},
	},
	MixedWords: {
		subsets: []Category{MixedWords, NonWhitespacesGroup},
		supersets: []Category{
			Letter, Letters, Digit, Digits, Number, MixedNumber, AlphabetNumeric,
			Word, Words, MixedWord,
		},
		aggregate: toGroup(Graph, NonWhitespace, Punct, Puncts, NonWhitespaces, PunctsGroup),
	},
	NonWhitespace: {
		fragment:  nonWhitespaceFragment,
		subsets:   []Category{NonWhitespace, NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{Letter, Digit, AlphabetNumeric, Punct, Graph},
		aggregate: withEntries(toGroup(Words, MixedWords, PunctsGroup), NonWhitespaces,
			Digits, Number, MixedNumber, Letters, Puncts, Word, MixedWord),
	},
	NonWhitespaces: {
		fragment: nonWhitespacesFragment,
		subsets:  []Category{NonWhitespaces, NonWhitespacesGroup},
		supersets: []Category{
			Digit, Digits, Number, MixedNumber, Letter, Letters, AlphabetNumeric,
			Punct, Puncts, Graph, Word, MixedWord, NonWhitespace,
		},
		aggregate: toGroup(Words, MixedWords, PunctsGroup),
	},
	NonWhitespacesGroup: {
		subsets: []Category{NonWhitespacesGroup},
		supersets: []Category{
			Digit, Digits, Number, MixedNumber, Letter, Letters, AlphabetNumeric,
			Punct, Puncts, PunctsGroup, Graph, Word, Words, MixedWord, MixedWords,
			NonWhitespace, NonWhitespaces,
		},
	},
}

// numberAggregate is shared by number and mixed_number.
var numberAggregate = map[Category]Category{
	Letter:          MixedWord,
	Letters:         MixedWord,
	AlphabetNumeric: MixedWord,
	Graph:           MixedWord,
	Word:            MixedWord,
	Words:           MixedWords,
	Punct:           NonWhitespaces,
	Puncts:          NonWhitespaces,
	NonWhitespace:   NonWhitespaces,
	PunctsGroup:     NonWhitespacesGroup,
}

func toGroup(cats ...Category) map[Category]Category {
	return withEntries(map[Category]Category{}, NonWhitespacesGroup, cats...)
}

func withEntry(m map[Category]Category, key, value Category) map[Category]Category {
	m[key] = value
	return m
}

func withEntries(m map[Category]Category, value Category, keys ...Category) map[Category]Category {
	for _, k := range keys {
		m[k] = value
	}
	return m
}

func contains(cats []Category, c Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}
