// Package clipboard copies generated templates and patterns to the tmux
// buffer, the system clipboard or the terminal through OSC52.
package clipboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Target names.
const (
	TargetTmux   = "tmux"
	TargetSystem = "system"
	TargetOSC52  = "osc52"
)

var (
	// ErrUnavailable is returned by a target that cannot run here.
	ErrUnavailable = errors.New("clipboard target unavailable")
	// ErrUnknownTarget is returned for a target name that does not exist.
	ErrUnknownTarget = errors.New("unknown clipboard target")
)

// Target is one clipboard destination.
type Target interface {
	Name() string
	Write(ctx context.Context, text string) error
}

// Option configures a Clipboard.
type Option func(*Clipboard)

// Clipboard writes text to every configured target.
type Clipboard struct {
	names  []string
	output io.Writer
	getenv func(string) string
}

// New returns a Clipboard writing to tmux, the system clipboard and OSC52.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		names:  []string{TargetTmux, TargetSystem, TargetOSC52},
		output: os.Stderr,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTargets selects the targets by name, in order.
func WithTargets(names ...string) Option {
	return func(c *Clipboard) { c.names = append([]string(nil), names...) }
}

// WithOutput sets where OSC52 sequences are written.
func WithOutput(w io.Writer) Option {
	return func(c *Clipboard) { c.output = w }
}

// WithEnv replaces the environment lookup.
func WithEnv(getenv func(string) string) Option {
	return func(c *Clipboard) { c.getenv = getenv }
}

// Targets resolves the configured target names.
func (c *Clipboard) Targets() ([]Target, error) {
	targets := make([]Target, 0, len(c.names))
	for _, name := range c.names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case TargetTmux:
			targets = append(targets, tmuxBuffer{inTmux: c.inTmux()})
		case TargetSystem:
			targets = append(targets, systemTool{tool: findSystemTool()})
		case TargetOSC52:
			targets = append(targets, osc52{output: c.output, inTmux: c.inTmux()})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
		}
	}
	return targets, nil
}

// Copy writes text to every target. Unavailable targets are skipped; it
// fails only when no target took the text.
func (c *Clipboard) Copy(ctx context.Context, text string) error {
	targets, err := c.Targets()
	if err != nil {
		return err
	}

	var errs []error
	copied := false
	for _, t := range targets {
		err := t.Write(ctx, text)
		switch {
		case err == nil:
			copied = true
			slog.Debug("Copied to clipboard", "target", t.Name(), "bytes", len(text))
		case errors.Is(err, ErrUnavailable):
			slog.Debug("Clipboard target skipped", "target", t.Name())
		default:
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		}
	}
	if copied {
		return nil
	}
	if len(errs) == 0 {
		return ErrUnavailable
	}
	return errors.Join(errs...)
}

func (c *Clipboard) inTmux() bool { return c.getenv("TMUX") != "" }

type tmuxBuffer struct{ inTmux bool }

func (tmuxBuffer) Name() string { return TargetTmux }

func (t tmuxBuffer) Write(ctx context.Context, text string) error {
	if !t.inTmux {
		return ErrUnavailable
	}
	cmd := exec.CommandContext(ctx, "tmux", "load-buffer", "-")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

type systemTool struct{ tool []string }

func (systemTool) Name() string { return TargetSystem }

func (s systemTool) Write(ctx context.Context, text string) error {
	if len(s.tool) == 0 {
		return ErrUnavailable
	}
	cmd := exec.CommandContext(ctx, s.tool[0], s.tool[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

type osc52 struct {
	output io.Writer
	inTmux bool
}

func (osc52) Name() string { return TargetOSC52 }

func (o osc52) Write(_ context.Context, text string) error {
	if o.output == nil {
		return ErrUnavailable
	}
	_, err := io.WriteString(o.output, osc52Sequence(text, o.inTmux))
	return err
}

// osc52Sequence returns the escape sequence setting the clipboard to text,
// wrapped in a DCS passthrough inside tmux.
func osc52Sequence(text string, inTmux bool) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if inTmux {
		return "\033Ptmux;\033\033]52;c;" + encoded + "\007\033\\"
	}
	return "\033]52;c;" + encoded + "\007"
}

// systemTools lists the clipboard commands tried on each platform.
func systemTools(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "linux", "freebsd", "openbsd":
		return [][]string{{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}}
	case "windows":
		return [][]string{{"clip"}}
	}
	return nil
}

func findSystemTool() []string {
	for _, tool := range systemTools(runtime.GOOS) {
		if _, err := exec.LookPath(tool[0]); err == nil {
			return tool
		}
	}
	return nil
}
