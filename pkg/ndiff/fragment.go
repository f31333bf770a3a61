package ndiff

import (
	"fmt"
	"strings"

	"github.com/Hanaasagi/patgen/pkg/pattern"
)

// Fragment kinds.
const (
	CommonName  = "ndiff_common_text"
	ChangedName = "ndiff_changed_text"
)

// Fragment is one run of an ndiff: text common to both sides, or the text
// removed from and added to a line. The zero value is an empty, not-ready
// fragment.
type Fragment struct {
	name     string
	common   []string
	removed  []string
	added    []string
	hadEmpty bool
}

// ParseFragment reads one ndiff line: "  x" is common text, "- x" removed
// text and "+ x" added text. Anything else yields an empty fragment.
func ParseFragment(line string) Fragment {
	if len(line) < 3 {
		return Fragment{}
	}
	text := line[2:]
	switch line[:2] {
	case "  ":
		return Fragment{name: CommonName, common: []string{text}}
	case "- ":
		return Fragment{name: ChangedName, removed: []string{text}}
	case "+ ":
		return Fragment{name: ChangedName, added: []string{text}}
	}
	return Fragment{}
}

// NewChanged builds a changed fragment from both sides of a diff.
func NewChanged(removed, added []string) Fragment {
	return Fragment{
		name:    ChangedName,
		removed: append([]string(nil), removed...),
		added:   append([]string(nil), added...),
	}
}

// Name returns the fragment kind, or "" for an empty fragment.
func (f Fragment) Name() string { return f.name }

func (f Fragment) IsCommon() bool  { return f.name == CommonName }
func (f Fragment) IsChanged() bool { return f.name == ChangedName }
func (f Fragment) IsReady() bool   { return f.name != "" }

// IsSameType reports whether both fragments are of the same kind.
func (f Fragment) IsSameType(other Fragment) bool {
	return f.IsReady() && f.name == other.name
}

// Common returns the common text items.
func (f Fragment) Common() []string { return append([]string(nil), f.common...) }

// Removed returns the removed side of a changed fragment.
func (f Fragment) Removed() []string { return append([]string(nil), f.removed...) }

// Added returns the added side of a changed fragment.
func (f Fragment) Added() []string { return append([]string(nil), f.added...) }

// Len returns the number of text items held.
func (f Fragment) Len() int { return len(f.common) + len(f.removed) + len(f.added) }

// Extend folds other into a copy of f. Fragments of different kinds leave f
// unchanged.
func (f Fragment) Extend(other Fragment) Fragment {
	if !f.IsSameType(other) {
		return f
	}
	out := Fragment{name: f.name, hadEmpty: f.hadEmpty || other.hadEmpty}
	out.common = append(append([]string(nil), f.common...), other.common...)
	out.removed = append(append([]string(nil), f.removed...), other.removed...)
	out.added = append(append([]string(nil), f.added...), other.added...)
	return out
}

// Readjust returns a copy of f without empty text items.
func (f Fragment) Readjust() Fragment {
	out := Fragment{name: f.name, hadEmpty: f.hadEmpty}
	var dropped bool
	out.common, dropped = dropEmpty(f.common)
	out.hadEmpty = out.hadEmpty || dropped
	out.removed, dropped = dropEmpty(f.removed)
	out.hadEmpty = out.hadEmpty || dropped
	out.added, dropped = dropEmpty(f.added)
	out.hadEmpty = out.hadEmpty || dropped
	return out
}

func dropEmpty(items []string) ([]string, bool) {
	var out []string
	dropped := false
	for _, item := range items {
		if item == "" {
			dropped = true
			continue
		}
		out = append(out, item)
	}
	return out, dropped
}

// IsContainingEmptyChanged reports whether the changed text may be absent:
// only one side holds data, or an empty item was dropped by Readjust.
func (f Fragment) IsContainingEmptyChanged() bool {
	if !f.IsChanged() {
		return false
	}
	return f.hadEmpty || (len(f.removed) == 0) != (len(f.added) == 0)
}

// CommonPattern returns the escaped common text. ws replaces single spaces.
func (f Fragment) CommonPattern(ws string) string {
	return pattern.EscapeText(strings.Join(f.common, " "), ws)
}

// CommonSnippet returns the common text unchanged.
func (f Fragment) CommonSnippet() string {
	return strings.Join(f.common, " ")
}

// FragmentOptions control how changed text is generalized.
type FragmentOptions struct {
	// Var is the variable name, such as v1.
	Var string
	// Label is inserted after the leading v of Var.
	Label string
	// Lessen tolerates any spacing and repetition count.
	Lessen bool
	// Root uses the widest non-whitespace pattern.
	Root bool
}

func (o FragmentOptions) name() string {
	if o.Label == "" {
		return o.Var
	}
	if strings.HasPrefix(o.Var, "v") {
		return "v" + o.Label + o.Var[1:]
	}
	return o.Label + o.Var
}

// Node classifies every changed item and joins the results.
func (f Fragment) Node() (pattern.Node, error) {
	items := append(append([]string(nil), f.removed...), f.added...)
	var nodes []pattern.Node
	for _, item := range items {
		if item == "" {
			continue
		}
		nodes = append(nodes, pattern.Classify(item))
	}
	return pattern.Fold(nodes)
}

func (f Fragment) changed(opts FragmentOptions) (pat, name string, err error) {
	if !f.IsChanged() {
		return "", "", fmt.Errorf("%w: %q is not changed text", pattern.ErrUnsupportedPattern, f.name)
	}
	node, err := f.Node()
	if err != nil {
		return "", "", err
	}
	switch {
	case opts.Root:
		return node.RootPattern(), "non_whitespaces_or_group", nil
	case opts.Lessen:
		return node.LessenPattern(), node.LessenSnippetName(), nil
	}
	return node.Pattern(), node.SnippetName(), nil
}

// ChangedPattern returns the named capture group generalizing the changed
// text.
func (f Fragment) ChangedPattern(opts FragmentOptions) (string, error) {
	pat, _, err := f.changed(opts)
	if err != nil {
		return "", err
	}
	if f.IsContainingEmptyChanged() {
		return fmt.Sprintf("(?P<%s>(%s)|)", opts.name(), pat), nil
	}
	return fmt.Sprintf("(?P<%s>%s)", opts.name(), pat), nil
}

// ChangedSnippet returns the snippet token generalizing the changed text.
func (f Fragment) ChangedSnippet(opts FragmentOptions) (string, error) {
	_, name, err := f.changed(opts)
	if err != nil {
		return "", err
	}
	if f.IsContainingEmptyChanged() {
		return fmt.Sprintf("%s(var_%s, or_empty)", name, opts.name()), nil
	}
	return fmt.Sprintf("%s(var_%s)", name, opts.name()), nil
}
