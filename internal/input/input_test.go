package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"plain", "fruits    meat", "fruits    meat"},
		{"coloured", "\x1b[31morange\x1b[0m    pork", "orange    pork"},
		{"bold and reset", "\x1b[1mName\x1b[0m: value", "Name: value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.line); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestReadFrom(t *testing.T) {
	got, err := ReadFrom(strings.NewReader("a  b\r\n\x1b[32m1\x1b[0m  2\n\n"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if want := "a  b\n1  2\n"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte("index  value\n1      x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if want := "index  value\n1      x"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if _, err := Read(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestRead_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close() // nolint: errcheck

	prevStdin, prevTerminal := stdin, isTerminal
	defer func() { stdin, isTerminal = prevStdin, prevTerminal }()
	stdin = r

	isTerminal = func(int) bool { return true }
	if _, err := Read("-"); !errors.Is(err, ErrInteractive) {
		t.Errorf("Expected ErrInteractive, got %v", err)
	}

	isTerminal = func(int) bool { return false }
	if _, err := w.WriteString("piped\n"); err != nil {
		t.Fatal(err)
	}
	w.Close() // nolint: errcheck
	got, err := Read("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != "piped" {
		t.Errorf("Expected %q, got %q", "piped", got)
	}
}
