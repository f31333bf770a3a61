// Package template turns snippet lines into a TextFSM template, compiles it
// and verifies it against sample text.
package template

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Hanaasagi/patgen/pkg/snippet"
	"github.com/Hanaasagi/patgen/pkg/textfsm"
)

// generatedHeaderRe matches a comment header written by a previous build so
// that a template can be fed back as user data.
var generatedHeaderRe = regexp.MustCompile(`^#{80}\r?\n# Template is generated by [^\r\n]*\r?\n(?:#[^\r\n]*\r?\n)*?#{80}[ \t]*(?:\r?\n|$)`)

// Options holds the template metadata and build mode.
type Options struct {
	Author      string
	Email       string
	Company     string
	Description string
	Debug       bool
	CreatedAt   time.Time
}

// Option configures a Builder.
type Option func(*Options)

// WithAuthor sets the author written in the comment header.
func WithAuthor(author string) Option {
	return func(o *Options) { o.Author = author }
}

// WithEmail sets the author email.
func WithEmail(email string) Option {
	return func(o *Options) { o.Email = email }
}

// WithCompany sets the company name. It stands in for a missing author.
func WithCompany(company string) Option {
	return func(o *Options) { o.Company = company }
}

// WithDescription sets the description, which may span several lines.
func WithDescription(description string) Option {
	return func(o *Options) { o.Description = description }
}

// WithDebug keeps a template the engine rejects instead of failing.
func WithDebug(debug bool) Option {
	return func(o *Options) { o.Debug = debug }
}

// WithCreatedAt fixes the creation date of the header.
func WithCreatedAt(t time.Time) Option {
	return func(o *Options) { o.CreatedAt = t }
}

// Builder assembles a template from user data. A Builder is not safe for
// concurrent use; distinct builders are independent.
type Builder struct {
	opts     Options
	userData string

	variables  []snippet.Variable
	statements []string

	bare     string
	template string
	bad      string
	parser   *textfsm.Template
	message  string
}

// New builds the template of userData, one snippet per line.
func New(userData string, opts ...Option) (*Builder, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	b := &Builder{opts: o, userData: userData}
	if err := b.Build(); err != nil {
		return nil, err
	}
	return b, nil
}

// Build assembles and compiles the template again from the user data.
func (b *Builder) Build() error {
	b.variables, b.statements = nil, nil
	b.bare, b.template, b.bad, b.parser = "", "", "", nil

	if err := b.prepare(); err != nil {
		return err
	}
	if len(b.variables) == 0 {
		return fmt.Errorf("%w: user data does not have any assigned variable", ErrInvalidFormat)
	}

	body := b.body()
	b.bare = body
	b.template = b.comment() + "\n" + body

	parser, err := textfsm.Parse(b.template)
	if err != nil {
		if !b.opts.Debug {
			return fmt.Errorf("%w: %w", ErrBuild, err)
		}
		slog.Error("Template rejected by the engine", "error", err)
		b.bad = "# " + err.Error() + "\n" + b.template
		b.template = ""
		return nil
	}
	b.parser = parser
	return nil
}

func (b *Builder) prepare() error {
	data := b.userData
	if trimmed := strings.TrimLeft(data, " \t\r\n"); generatedHeaderRe.MatchString(trimmed) {
		data = generatedHeaderRe.ReplaceAllString(trimmed, "")
	}

	for _, raw := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		pl, err := ParseLine(strings.TrimRight(raw, " \t\r"))
		if err != nil {
			return err
		}
		stmt, err := pl.Statement()
		if err != nil {
			return err
		}
		if stmt != "" {
			b.statements = append(b.statements, stmt)
		}
		for _, v := range pl.Variables() {
			b.addVariable(v)
		}
	}
	return nil
}

// addVariable keeps the first declaration of a variable and merges the
// value options of later ones.
func (b *Builder) addVariable(v snippet.Variable) {
	for i, x := range b.variables {
		if x.Name != v.Name || x.Pattern != v.Pattern {
			continue
		}
		for _, opt := range v.Options {
			if !slices.Contains(x.Options, opt) {
				b.variables[i].Options = append(b.variables[i].Options, opt)
			}
		}
		return
	}
	v.Options = slices.Clone(v.Options)
	b.variables = append(b.variables, v)
}

// body renders the Value lines and the states. Every state but the first
// is preceded by a blank line.
func (b *Builder) body() string {
	lines := make([]string, 0, len(b.variables)+len(b.statements)+2)
	for _, v := range b.variables {
		if len(v.Options) > 0 {
			lines = append(lines, fmt.Sprintf("Value %s %s (%s)", strings.Join(v.Options, ","), v.Name, v.Pattern))
			continue
		}
		lines = append(lines, fmt.Sprintf("Value %s (%s)", v.Name, v.Pattern))
	}

	statements := b.statements
	if len(statements) == 0 || statements[0] != textfsm.StartState {
		statements = append([]string{textfsm.StartState}, statements...)
	}
	for _, stmt := range statements {
		if stateNameRe.MatchString(stmt) {
			lines = append(lines, "")
		}
		lines = append(lines, stmt)
	}
	return strings.Join(lines, "\n")
}

func (b *Builder) comment() string {
	rule := strings.Repeat("#", headerRuleWidth)
	lines := []string{rule, "# Template is generated by " + Generator}

	author := b.opts.Author
	if author == "" {
		author = b.opts.Company
	}
	if author != "" {
		lines = append(lines, "# Created by  : "+author)
	}
	if b.opts.Email != "" {
		lines = append(lines, "# Email       : "+b.opts.Email)
	}
	if b.opts.Company != "" {
		lines = append(lines, "# Company     : "+b.opts.Company)
	}

	created := b.opts.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	lines = append(lines, "# Created date: "+created.Format(time.DateOnly))

	if desc := strings.TrimSpace(b.opts.Description); desc != "" {
		desc = strings.Join(strings.Split(desc, "\n"), "\n"+descriptionIndent)
		lines = append(lines, "# Description : "+desc)
	}
	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}

// Template returns the compiled template, or "" when a debug build was
// rejected.
func (b *Builder) Template() string { return b.template }

// BareTemplate returns the template without its comment header.
func (b *Builder) BareTemplate() string { return b.bare }

// BadTemplate returns the rejected template of a debug build, headed by the
// engine error as a comment.
func (b *Builder) BadTemplate() string { return b.bad }

// Variables returns the declared variables in order.
func (b *Builder) Variables() []snippet.Variable {
	return append([]snippet.Variable(nil), b.variables...)
}

// Statements returns the rule lines in order.
func (b *Builder) Statements() []string {
	return append([]string(nil), b.statements...)
}

// Parser returns the compiled engine template, nil after a rejected debug
// build.
func (b *Builder) Parser() *textfsm.Template { return b.parser }
