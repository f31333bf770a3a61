package main

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/Hanaasagi/patgen/cmd"
	"github.com/Hanaasagi/patgen/internal/input"
	"github.com/Hanaasagi/patgen/pkg/iterative"
	"github.com/Hanaasagi/patgen/pkg/lineref"
	"github.com/Hanaasagi/patgen/pkg/ndiff"
	"github.com/Hanaasagi/patgen/pkg/pattern"
	"github.com/Hanaasagi/patgen/pkg/tabular"
	"github.com/Hanaasagi/patgen/pkg/template"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	groupInfer    = "infer"
	groupTemplate = "template"
)

var errVerifyFailed = errors.New("verification failed")

func newClassifyCmd(app *AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "classify TEXT...",
		Short:   "Show the narrowest category of each text",
		GroupID: groupInfer,
		Args:    cobra.MinimumNArgs(1),
		Example: "  patgen classify 123 1.5 abc 'a b'",
		RunE: func(c *cobra.Command, args []string) error {
			width := 0
			for _, arg := range args {
				width = max(width, runewidth.StringWidth(arg))
			}

			var b strings.Builder
			var primary []string
			for i, arg := range args {
				node := pattern.Classify(arg)
				if !node.Category().Valid() {
					return fmt.Errorf("%w: %q", pattern.ErrUnsupportedPattern, arg)
				}
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "%s  %-22s %s", runewidth.FillRight(arg, width), node.SnippetName(), node.Pattern())
				primary = append(primary, node.Pattern())
			}
			app.emit(c, strings.Join(primary, "\n"), b.String())
			return nil
		},
	}
}

func newRecommendCmd(app *AppConfig) *cobra.Command {
	var lessen bool
	c := &cobra.Command{
		Use:     "recommend A B",
		Short:   "Join the categories of two texts",
		GroupID: groupInfer,
		Args:    cobra.ExactArgs(2),
		Example: "  patgen recommend 123 abc",
		RunE: func(c *cobra.Command, args []string) error {
			node, err := pattern.RecommendData(args[0], args[1])
			if err != nil {
				return err
			}
			name, pat := node.SnippetName(), node.Pattern()
			if lessen {
				name, pat = node.LessenSnippetName(), node.LessenPattern()
			}
			app.emit(c, pat, fmt.Sprintf("%s  %s", name, pat))
			return nil
		},
	}
	c.Flags().BoolVarP(&lessen, "lessen", "l", false, "Tolerate any spacing between repeated tokens")
	return c
}

func newLineCmd(app *AppConfig) *cobra.Command {
	var (
		inputFile   string
		label       string
		lessen      bool
		snippetOnly bool
	)
	c := &cobra.Command{
		Use:     "line",
		Short:   "Generalize example lines into one pattern",
		GroupID: groupInfer,
		Example: "  printf 'eth0 up 1500\\neth1 down 9000\\n' | patgen line --label iface",
		RunE: func(c *cobra.Command, args []string) error {
			text, err := input.Read(inputFile)
			if err != nil {
				return err
			}

			opts := []ndiff.LineOption{ndiff.WithLabel(label)}
			if lessen {
				opts = append(opts, ndiff.WithLessen())
			}
			lp, err := ndiff.NewLinePattern(strings.Split(text, "\n"), opts...)
			if err != nil {
				return err
			}

			if snippetOnly {
				app.emit(c, lp.Snippet(), lp.Snippet())
				return nil
			}
			var b strings.Builder
			cmd.Section(&b, "Pattern", lp.Pattern())
			cmd.Section(&b, "Snippet", lp.Snippet())
			app.emit(c, lp.Pattern(), strings.TrimRight(b.String(), "\n"))
			return nil
		},
	}
	c.Flags().StringVarP(&inputFile, "input-file", "i", "", "Read input from file instead of stdin")
	c.Flags().StringVar(&label, "label", "", "Prefix of the variable names")
	c.Flags().BoolVarP(&lessen, "lessen", "l", false, "Tolerate any spacing between repeated tokens")
	c.Flags().BoolVarP(&snippetOnly, "snippet", "s", false, "Print the snippet only")
	return c
}

func newTableCmd(app *AppConfig) *cobra.Command {
	var (
		inputFile    string
		divider      string
		columns      int
		widths       string
		header       string
		customHeader string
		from, to     string
		asRegex      bool
		parse        bool
	)
	c := &cobra.Command{
		Use:     "table",
		Short:   "Infer the columns of a table and its template snippet",
		GroupID: groupInfer,
		Example: "  kubectl get pods | patgen table\n  patgen table -i df.txt --widths '15, 10,' --parse",
		RunE: func(c *cobra.Command, args []string) error {
			text, err := input.Read(inputFile)
			if err != nil {
				return err
			}

			if !c.Flags().Changed("divider") {
				divider = app.config.Tabular.Divider
			}
			opts := []tabular.Option{
				tabular.WithDivider(divider),
				tabular.WithColumnsCount(columns),
				tabular.WithHeadersData(header),
				tabular.WithCustomHeadersData(customHeader),
				tabular.WithGapSlack(app.config.Tabular.LeadingGapSlack),
				tabular.WithMarkers(app.config.Tabular.OneLineMarker, app.config.Tabular.MultiLineMarker),
			}
			if widths != "" {
				w, err := tabular.ParseWidths(widths)
				if err != nil {
					return err
				}
				opts = append(opts, tabular.WithColumnWidths(w...))
			}
			if from != "" || to != "" {
				lo, hi, err := lineRange(strings.Split(text, "\n"), from, to)
				if err != nil {
					return err
				}
				opts = append(opts, tabular.WithLineRange(lo, hi))
			}

			table, err := tabular.New(text, opts...)
			if err != nil {
				return err
			}

			var out string
			switch {
			case parse:
				out = strings.TrimRight(table.Render(), "\n")
			case asRegex:
				out, err = table.ToRegex()
			default:
				out, err = table.ToTemplateSnippet()
			}
			if err != nil {
				return err
			}
			app.emit(c, out, out)
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&inputFile, "input-file", "i", "", "Read input from file instead of stdin")
	f.StringVarP(&divider, "divider", "d", "", `Cell divider: "|", "  " or " "`)
	f.IntVarP(&columns, "columns", "n", 0, "Expected number of columns")
	f.StringVarP(&widths, "widths", "w", "", `Fixed column widths, e.g. "10, 15,"`)
	f.StringVar(&header, "header", "", "Header line of the table")
	f.StringVar(&customHeader, "custom-header", "", "Dash line giving the columns of a table without header")
	f.StringVar(&from, "from", "", "First line of the table: an index or a search (--wildcard, --regex)")
	f.StringVar(&to, "to", "", "Line ending the table: an index or a search (--wildcard, --regex)")
	f.BoolVar(&asRegex, "regex", false, "Print the row regex")
	f.BoolVar(&parse, "parse", false, "Print the parsed records as a table")
	c.MarkFlagsMutuallyExclusive("regex", "parse")
	return c
}

// lineRange resolves the --from and --to references. An empty from is the
// first line and an empty to is the end of the text.
func lineRange(lines []string, from, to string) (int, int, error) {
	lo, hi := 0, len(lines)
	var err error
	if from != "" {
		if lo, err = lineIndex(lines, from); err != nil {
			return 0, 0, err
		}
	}
	if to != "" {
		if hi, err = lineIndex(lines, to); err != nil {
			return 0, 0, err
		}
	}
	return lo, hi, nil
}

func lineIndex(lines []string, ref string) (int, error) {
	var r any = ref
	if n, err := strconv.Atoi(ref); err == nil {
		r = n
	}
	i, ok, err := lineref.Position(lines, r)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q matches no line", lineref.ErrReference, ref)
	}
	return i, nil
}

func newIterateCmd(app *AppConfig) *cobra.Command {
	var (
		inputFile string
		asRegex   bool
		asSnippet bool
	)
	c := &cobra.Command{
		Use:   "iterate",
		Short: "Refine a block with capture(), keep() and action() directives",
		Long: `Refine a block of lines step by step.

Run it on raw text to get an editable snippet, edit the directives
(capture(11) keep(2) action(11:12-join, 3-split)) and run it again on
the edited snippet.`,
		GroupID: groupInfer,
		RunE: func(c *cobra.Command, args []string) error {
			text, err := input.Read(inputFile)
			if err != nil {
				return err
			}
			lp, err := iterative.NewLinesPattern(text)
			if err != nil {
				return err
			}

			out := lp.Snippet()
			switch {
			case asRegex:
				out = lp.Regex()
			case asSnippet:
				out = lp.TemplateSnippet()
			}
			app.emit(c, out, out)
			return nil
		},
	}
	c.Flags().StringVarP(&inputFile, "input-file", "i", "", "Read input from file instead of stdin")
	c.Flags().BoolVar(&asRegex, "regex", false, "Print the block regex")
	c.Flags().BoolVar(&asSnippet, "template", false, "Print the template snippet")
	c.MarkFlagsMutuallyExclusive("regex", "template")
	return c
}

// templateOptions reads the metadata flags, falling back to the config.
func templateOptions(c *cobra.Command, config TemplateConfig) []template.Option {
	str := func(name, fallback string) string {
		if c.Flags().Changed(name) {
			v, _ := c.Flags().GetString(name)
			return v
		}
		return fallback
	}
	debugMode := config.Debug
	if c.Flags().Changed("debug") {
		debugMode, _ = c.Flags().GetBool("debug")
	}
	return []template.Option{
		template.WithAuthor(str("author", config.Author)),
		template.WithEmail(str("email", config.Email)),
		template.WithCompany(str("company", config.Company)),
		template.WithDescription(str("description", config.Description)),
		template.WithDebug(debugMode),
	}
}

func newTemplateCmd(app *AppConfig) *cobra.Command {
	var inputFile string
	c := &cobra.Command{
		Use:     "template",
		Short:   "Build a TextFSM template from snippet lines",
		GroupID: groupTemplate,
		Example: "  patgen table -i routes.txt | patgen template --author me",
		RunE: func(c *cobra.Command, args []string) error {
			text, err := input.Read(inputFile)
			if err != nil {
				return err
			}
			b, err := template.New(text, templateOptions(c, app.config.Template)...)
			if err != nil {
				return err
			}
			if bad := b.BadTemplate(); bad != "" {
				fmt.Fprintln(c.ErrOrStderr(), cmd.Verdict(false)+" the engine rejected the template")
				app.emit(c, bad, bad)
				return nil
			}
			app.emit(c, b.Template(), b.Template())
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&inputFile, "input-file", "i", "", "Read the snippet from file instead of stdin")
	f.String("author", "", "Author written in the template header")
	f.String("email", "", "Author email")
	f.String("company", "", "Company name")
	f.String("description", "", "Template description")
	f.Bool("debug", false, "Keep a rejected template for inspection")
	return c
}

type verifyResult struct {
	path    string
	ok      bool
	message string
}

func newVerifyCmd(app *AppConfig) *cobra.Command {
	var (
		snippetFile string
		dataFiles   []string
		rows        int
		ignoreSpace bool
	)
	c := &cobra.Command{
		Use:     "verify",
		Short:   "Check that a snippet template parses sample data",
		GroupID: groupTemplate,
		Example: "  patgen verify -s fruits.snippet -d day1.txt -d day2.txt --rows 3",
		RunE: func(c *cobra.Command, args []string) error {
			snippet, err := input.Read(snippetFile)
			if err != nil {
				return err
			}
			opts := templateOptions(c, app.config.Template)
			if _, err := template.New(snippet, opts...); err != nil {
				return err
			}
			if !c.Flags().Changed("ignore-space") {
				ignoreSpace = app.config.Verify.IgnoreSpace
			}
			vopts := template.VerifyOptions{ExpectedRows: rows, IgnoreSpace: ignoreSpace}

			results := make([]verifyResult, len(dataFiles))
			g, ctx := errgroup.WithContext(c.Context())
			g.SetLimit(runtime.NumCPU())
			for i, path := range dataFiles {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					data, err := input.Read(path)
					if err != nil {
						return err
					}
					b, err := template.New(snippet, opts...)
					if err != nil {
						return err
					}
					ok, err := b.Verify(data, vopts)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					results[i] = verifyResult{path: path, ok: ok, message: b.VerifyMessage()}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var b strings.Builder
			failed := 0
			for i, r := range results {
				if i > 0 {
					b.WriteByte('\n')
				}
				if !r.ok {
					failed++
				}
				fmt.Fprintf(&b, "%s %s\n%s", cmd.Verdict(r.ok), r.path, indent(r.message))
			}
			app.emit(c, b.String(), b.String())
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errVerifyFailed, failed, len(results))
			}
			return nil
		},
	}
	f := c.Flags()
	f.StringVarP(&snippetFile, "snippet", "s", "", "Snippet file")
	f.StringArrayVarP(&dataFiles, "data", "d", nil, "Sample data file, repeatable")
	f.IntVar(&rows, "rows", 0, "Expected number of records")
	f.BoolVar(&ignoreSpace, "ignore-space", true, "Trim values before comparing")
	f.String("author", "", "Author written in the template header")
	f.String("email", "", "Author email")
	f.String("company", "", "Company name")
	f.String("description", "", "Template description")
	f.Bool("debug", false, "Keep a rejected template for inspection")
	_ = c.MarkFlagRequired("snippet")
	_ = c.MarkFlagRequired("data")
	return c
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

func newConfigCmd(app *AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(c.OutOrStdout(), "# %s\n", app.configFile)
			return WriteConfig(c.OutOrStdout(), app.config)
		},
	}
}
