package clipboard

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestOSC52Sequence(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		inTmux bool
		want   string
	}{
		{"plain", "hello", false, "\033]52;c;aGVsbG8=\007"},
		{"empty", "", false, "\033]52;c;\007"},
		{"tmux passthrough", "hello", true, "\033Ptmux;\033\033]52;c;aGVsbG8=\007\033\\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := osc52Sequence(tt.text, tt.inTmux); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClipboard_Copy(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithTargets(TargetTmux, TargetOSC52), WithOutput(&buf), WithEnv(env(nil)))

	if err := c.Copy(context.Background(), "Value n (\\d+)"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if want := osc52Sequence("Value n (\\d+)", false); buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestClipboard_Unavailable(t *testing.T) {
	c := New(WithTargets(TargetTmux), WithEnv(env(nil)))
	if err := c.Copy(context.Background(), "x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
}

func TestClipboard_UnknownTarget(t *testing.T) {
	c := New(WithTargets("osc52", "pigeon"))
	if _, err := c.Targets(); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("Expected ErrUnknownTarget, got %v", err)
	}
}

func TestClipboard_TargetsInTmux(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithTargets(" OSC52 "), WithOutput(&buf), WithEnv(env(map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"})))

	targets, err := c.Targets()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(targets) != 1 || targets[0].Name() != TargetOSC52 {
		t.Fatalf("Expected the osc52 target, got %v", targets)
	}
	if err := targets[0].Write(context.Background(), "hello"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if want := osc52Sequence("hello", true); buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestSystemTools(t *testing.T) {
	tests := []struct {
		goos  string
		first string
	}{
		{"darwin", "pbcopy"},
		{"linux", "wl-copy"},
		{"windows", "clip"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			tools := systemTools(tt.goos)
			if len(tools) == 0 || tools[0][0] != tt.first {
				t.Errorf("Expected %s first, got %v", tt.first, tools)
			}
		})
	}
	if tools := systemTools("plan9"); tools != nil {
		t.Errorf("Expected no tool, got %v", tools)
	}
}

func BenchmarkOSC52Sequence(b *testing.B) {
	text := "Value lastwritetime ([\\x21-\\x7e]*[a-zA-Z0-9][\\x21-\\x7e]*)"
	for i := 0; i < b.N; i++ {
		_ = osc52Sequence(text, false)
	}
}
