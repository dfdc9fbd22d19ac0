// Package console implements the interactive terminal collaborator: blocking
// line prompts and leveled, colorized output.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Level classifies a displayed message.
type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

// Console is the terminal contract consumed by the session loop. Tests
// substitute a scripted implementation.
type Console interface {
	Prompt(question string) (string, error)
	Display(message string, level Level)
}

// Terminal reads prompts from an input stream and writes leveled output.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Terminal bound to stdin/stdout.
func New() *Terminal {
	return NewWith(os.Stdin, os.Stdout)
}

// NewWith binds the terminal to explicit streams.
func NewWith(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Prompt writes the question and blocks for one line of input, trimmed. A
// final line without a trailing newline is still returned; the error reports
// input exhaustion so callers can stop prompting.
func (t *Terminal) Prompt(question string) (string, error) {
	fmt.Fprint(t.out, question)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Display writes the message colorized by level.
func (t *Terminal) Display(message string, level Level) {
	fmt.Fprintln(t.out, levelColor(level).Sprint(message))
}

func levelColor(level Level) *color.Color {
	switch level {
	case Success:
		return color.New(color.FgGreen)
	case Warning:
		return color.New(color.FgYellow)
	case Error:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}

var _ Console = (*Terminal)(nil)
