package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Node is one classified piece of text: a category plus the raw data that
// produced it. Nodes are values and are never mutated; Recommend returns a
// new node.
type Node struct {
	category Category
	data     []string
	pattern  string
}

var predicates = buildPredicates()

func buildPredicates() map[Category]*regexp.Regexp {
	m := make(map[Category]*regexp.Regexp, len(lattice))
	for cat, info := range lattice {
		if cat.IsMultiToken() {
			base := lattice[cat.Base()].fragment
			m[cat] = regexp.MustCompile(`^(?:` + base + `)(?: +(?:` + base + `))*$`)
			continue
		}
		m[cat] = regexp.MustCompile(`^(?:` + info.fragment + `)$`)
	}
	return m
}

// satisfies reports whether every item of data fulfils the category
// predicate. A plural category also needs one item that actually repeats.
func satisfies(cat Category, data []string) bool {
	re, ok := predicates[cat]
	if !ok || len(data) == 0 {
		return false
	}
	for _, item := range data {
		if !re.MatchString(item) {
			return false
		}
	}
	return !cat.IsPlural() || hasRepetition(cat, data)
}

// hasRepetition reports whether some item repeats: more than one character
// for a plural category, more than one token for a multi token category.
func hasRepetition(cat Category, data []string) bool {
	for _, item := range data {
		if cat.IsMultiToken() && strings.Contains(item, " ") {
			return true
		}
		if !cat.IsMultiToken() && utf8.RuneCountInString(item) > 1 {
			return true
		}
	}
	return false
}

// New creates a node of the given category. The node pattern is empty when
// the data does not satisfy the category.
func New(cat Category, data ...string) Node {
	n := Node{category: cat, data: append([]string(nil), data...)}
	if satisfies(cat, n.data) {
		n.pattern = shapePattern(cat, n.data)
	}
	return n
}

// newJoined creates a node produced by a join. Only the shape of the data is
// used; its content was validated when the operands were classified.
func newJoined(cat Category, data []string) Node {
	n := Node{category: cat, data: data}
	if len(data) > 0 {
		n.pattern = shapePattern(cat, data)
	}
	return n
}

// Category returns the node category.
func (n Node) Category() Category { return n.category }

// Data returns a copy of the raw data behind the node.
func (n Node) Data() []string { return append([]string(nil), n.data...) }

// Pattern returns the regex fragment, or "" when the node is inapplicable.
func (n Node) Pattern() string { return n.pattern }

// IsEmpty reports whether the node is inapplicable.
func (n Node) IsEmpty() bool { return n.pattern == "" }

// Value returns the first data item, the value shown in readable snippets.
func (n Node) Value() string {
	if len(n.data) == 0 {
		return ""
	}
	return n.data[0]
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%q)", n.category, n.data)
}

// repetition describes how a multi token category repeats its base.
type repetition struct {
	multiSpace bool // separator is " +"
	oneOrMore  bool // quantifier is "+"
}

func repetitionOf(data []string) repetition {
	r := repetition{oneOrMore: len(data) > 0}
	for _, item := range data {
		if strings.Contains(item, "  ") {
			r.multiSpace = true
		}
		if !strings.Contains(strings.TrimSpace(item), " ") {
			r.oneOrMore = false
		}
	}
	return r
}

func (r repetition) render(base string) string {
	sep, quant := " ", "*"
	if r.multiSpace {
		sep = " +"
	}
	if r.oneOrMore {
		quant = "+"
	}
	return base + "(" + sep + base + ")" + quant
}

func shapePattern(cat Category, data []string) string {
	if !cat.IsMultiToken() {
		return lattice[cat].fragment
	}
	return repetitionOf(data).render(lattice[cat.Base()].fragment)
}

// LessenPattern returns the pattern tolerant of any spacing and count of
// repetitions. Single token categories are unchanged.
func (n Node) LessenPattern() string {
	if n.IsEmpty() || !n.category.IsMultiToken() {
		return n.pattern
	}
	return repetition{multiSpace: true}.render(lattice[n.category.Base()].fragment)
}

// RootPattern returns the widest pattern used when a node spans a whole line.
func (n Node) RootPattern() string {
	if n.IsEmpty() {
		return ""
	}
	return repetition{multiSpace: true}.render(nonWhitespacesFragment)
}

// RepeatPattern returns the base pattern followed by at most extra space
// separated repetitions.
func (n Node) RepeatPattern(extra int) string {
	if n.IsEmpty() {
		return ""
	}
	base := lattice[n.category.Base()].fragment
	if extra <= 0 {
		return base
	}
	return fmt.Sprintf("%s( %s){0,%d}", base, base, extra)
}

// IsSubsetOf reports whether n's category is contained by other's category.
func (n Node) IsSubsetOf(other Node) (bool, error) {
	if err := checkPair(n, other); err != nil {
		return false, err
	}
	return contains(lattice[n.category].subsets, other.category), nil
}

// IsSupersetOf reports whether n's category strictly contains other's category.
func (n Node) IsSupersetOf(other Node) (bool, error) {
	if err := checkPair(n, other); err != nil {
		return false, err
	}
	return contains(lattice[n.category].supersets, other.category), nil
}

func checkPair(a, b Node) error {
	if !a.category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedPattern, a)
	}
	if !b.category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedPattern, b)
	}
	return nil
}

// Recommend returns the narrowest node covering both n and other. The result
// carries the data of both nodes.
func (n Node) Recommend(other Node) (Node, error) {
	if err := checkPair(n, other); err != nil {
		return Node{}, err
	}

	data := make([]string, 0, len(n.data)+len(other.data))
	data = append(data, n.data...)
	data = append(data, other.data...)

	info := lattice[n.category]
	switch {
	case contains(info.subsets, other.category):
		return widen(other.category, data), nil
	case contains(info.supersets, other.category):
		return widen(n.category, data), nil
	}

	cat, ok := info.aggregate[other.category]
	if !ok {
		return Node{}, fmt.Errorf("%w: %s with %s", ErrNotImplemented, n.category, other.category)
	}
	return widen(cat, data), nil
}

// widen joins data under cat, or under the narrowest category containing cat
// whose pattern matches every item. A digit joined with a word is the common
// case: the word fragment needs a leading letter.
func widen(cat Category, data []string) Node {
	joined := newJoined(cat, data)
	if matchesAll(joined.pattern, data) {
		return joined
	}
	for _, c := range classifyOrder {
		if c == cat || !contains(lattice[cat].subsets, c) {
			continue
		}
		if node := newJoined(c, data); matchesAll(node.pattern, data) {
			return node
		}
	}
	return joined
}

var anchored sync.Map

func matchesAll(pattern string, data []string) bool {
	if pattern == "" {
		return false
	}
	v, ok := anchored.Load(pattern)
	if !ok {
		v, _ = anchored.LoadOrStore(pattern, regexp.MustCompile(`^(?:`+pattern+`)$`))
	}
	re := v.(*regexp.Regexp)
	for _, item := range data {
		if !re.MatchString(item) {
			return false
		}
	}
	return true
}

// RecommendData classifies a and b and joins the results.
func RecommendData(a, b string) (Node, error) {
	return Classify(a).Recommend(Classify(b))
}

// Fold joins every node from left to right.
func Fold(nodes []Node) (Node, error) {
	if len(nodes) == 0 {
		return Node{}, fmt.Errorf("%w: nothing to join", ErrUnsupportedPattern)
	}
	acc := nodes[0]
	if !acc.category.Valid() {
		return Node{}, fmt.Errorf("%w: %s", ErrUnsupportedPattern, acc)
	}
	for _, next := range nodes[1:] {
		joined, err := acc.Recommend(next)
		if err != nil {
			return Node{}, err
		}
		acc = joined
	}
	return acc, nil
}
