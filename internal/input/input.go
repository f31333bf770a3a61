// Package input reads the example text handed to the commands.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leaanthony/go-ansi-parser"
	"golang.org/x/term"
)

const defaultSize = 4096

// ErrInteractive is returned when stdin is a terminal and no file is given.
var ErrInteractive = errors.New("no input: stdin is a terminal, pass a file or pipe the text")

var (
	stdin      = os.Stdin
	isTerminal = term.IsTerminal
)

// Read returns the text of the file at path, or of stdin when path is ""
// or "-". ANSI escape sequences are removed.
func Read(path string) (string, error) {
	if path == "" || path == "-" {
		if isTerminal(int(stdin.Fd())) {
			return "", ErrInteractive
		}
		return ReadFrom(stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening input file: %w", err)
	}
	defer file.Close() // nolint: errcheck
	return ReadFrom(file)
}

// ReadFrom reads r to the end, drops the final line break and removes ANSI
// escape sequences line by line.
func ReadFrom(r io.Reader) (string, error) {
	reader := bufio.NewReaderSize(r, defaultSize)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, StripANSI(strings.TrimSuffix(line, "\r")))
		}
		if err == io.EOF {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

// StripANSI returns line without its escape sequences. A line the parser
// rejects is returned unchanged.
func StripANSI(line string) string {
	if !strings.Contains(line, "\x1b") {
		return line
	}
	elements, err := ansi.Parse(line)
	if err != nil {
		return line
	}
	var b strings.Builder
	for _, element := range elements {
		b.WriteString(element.Label)
	}
	return b.String()
}
