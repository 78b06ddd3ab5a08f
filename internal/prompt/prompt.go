// Package prompt provides the interactive question primitives the install
// protocol suspends on: yes/no confirmation, free-text input with a
// pre-filled default, and single-choice selection. The Prompter interface
// keeps the protocol testable without a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prompter asks the user questions and returns their answers.
type Prompter interface {
	// Confirm asks a yes/no question. def is returned on empty input.
	Confirm(question string, def bool) (bool, error)

	// Input asks for a line of text, returning def on empty input.
	Input(question, def string) (string, error)

	// Select asks the user to pick exactly one of choices and returns its
	// index. There is no default: the question repeats until a valid
	// choice is made.
	Select(question string, choices []string) (int, error)
}

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// Terminal is a Prompter reading answers line by line from in.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal creates a Terminal prompter over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

func (t *Terminal) Confirm(question string, def bool) (bool, error) {
	hint := "(Y/n)"
	if !def {
		hint = "(y/N)"
	}
	fmt.Fprintf(t.out, "%s %s %s ", markStyle.Render("?"), questionStyle.Render(question), hintStyle.Render(hint))

	line, err := t.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (t *Terminal) Input(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s %s %s ", markStyle.Render("?"), questionStyle.Render(question), hintStyle.Render("("+def+")"))
	} else {
		fmt.Fprintf(t.out, "%s %s ", markStyle.Render("?"), questionStyle.Render(question))
	}

	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (t *Terminal) Select(question string, choices []string) (int, error) {
	fmt.Fprintf(t.out, "%s %s\n", markStyle.Render("?"), questionStyle.Render(question))
	for i, choice := range choices {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, choice)
	}

	for {
		fmt.Fprintf(t.out, "  %s ", hintStyle.Render(fmt.Sprintf("Answer (1-%d):", len(choices))))
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
	}
}

func (t *Terminal) readLine() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}
