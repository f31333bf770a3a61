package pattern

import (
	"fmt"
	"sort"
	"strings"
)

// multiNames maps each multi token category to its snippet name per
// repetition shape.
var multiNames = map[Category]map[repetition]string{
	Words: {
		{}:                                  "words",
		{oneOrMore: true}:                   "phrase",
		{multiSpace: true, oneOrMore: true}: "words_group",
		{multiSpace: true}:                  "word_or_group",
	},
	MixedWords: {
		{}:                                  "mixed_words",
		{oneOrMore: true}:                   "mixed_phrase",
		{multiSpace: true, oneOrMore: true}: "mixed_words_group",
		{multiSpace: true}:                  "mixed_word_or_group",
	},
	PunctsGroup: {
		{}:                                  "puncts_or_phrase",
		{oneOrMore: true}:                   "puncts_phrase",
		{multiSpace: true, oneOrMore: true}: "puncts_group",
		{multiSpace: true}:                  "puncts_or_group",
	},
	NonWhitespacesGroup: {
		{}:                                  "non_whitespaces_or_phrase",
		{oneOrMore: true}:                   "non_whitespaces_phrase",
		{multiSpace: true, oneOrMore: true}: "non_whitespaces_group",
		{multiSpace: true}:                  "non_whitespaces_or_group",
	},
}

// symbols replaces characters that would break the snippet grammar.
var (
	symbols = strings.NewReplacer(
		"(", "_SYMBOL_LEFT_PARENTHESIS_",
		")", "_SYMBOL_RIGHT_PARENTHESIS_",
	)
	unsymbols = strings.NewReplacer(
		"_SYMBOL_LEFT_PARENTHESIS_", "(",
		"_SYMBOL_RIGHT_PARENTHESIS_", ")",
	)
)

// EscapeSymbols hides the characters of value that a snippet token cannot
// carry.
func EscapeSymbols(value string) string { return symbols.Replace(value) }

// RestoreSymbols reverses EscapeSymbols.
func RestoreSymbols(value string) string { return unsymbols.Replace(value) }

// snippetForm is what a snippet name stands for.
type snippetForm struct {
	category Category
	rep      repetition
}

var snippetForms = buildSnippetForms()

func buildSnippetForms() map[string]snippetForm {
	m := make(map[string]snippetForm)
	for _, cat := range classifyOrder {
		if !cat.IsMultiToken() {
			m[cat.String()] = snippetForm{category: cat}
		}
	}
	for cat, names := range multiNames {
		for rep, name := range names {
			m[name] = snippetForm{category: cat, rep: rep}
		}
	}
	return m
}

// SnippetName returns the repetition aware name of the node.
func (n Node) SnippetName() string {
	if !n.category.IsMultiToken() {
		return n.category.String()
	}
	return multiNames[n.category][repetitionOf(n.data)]
}

// LessenSnippetName returns the name matching LessenPattern.
func (n Node) LessenSnippetName() string {
	if !n.category.IsMultiToken() {
		return n.category.String()
	}
	return multiNames[n.category][repetition{multiSpace: true}]
}

// Snippet renders the node as a readable snippet token such as
// digit(var=v1, value=1). The var part is omitted when name is empty.
func (n Node) Snippet(name string) string {
	value := symbols.Replace(n.Value())
	if name == "" {
		return fmt.Sprintf("%s(value=%s)", n.SnippetName(), value)
	}
	return fmt.Sprintf("%s(var=%s, value=%s)", n.SnippetName(), name, value)
}

// PatternForName returns the regex fragment behind a snippet name.
func PatternForName(name string) (string, bool) {
	form, ok := snippetForms[name]
	if !ok {
		return "", false
	}
	if !form.category.IsMultiToken() {
		return lattice[form.category].fragment, true
	}
	return form.rep.render(lattice[form.category.Base()].fragment), true
}

// CategoryForName returns the category behind a snippet name.
func CategoryForName(name string) (Category, bool) {
	form, ok := snippetForms[name]
	return form.category, ok
}

// SnippetNames returns every known snippet name, sorted.
func SnippetNames() []string {
	names := make([]string, 0, len(snippetForms))
	for name := range snippetForms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
