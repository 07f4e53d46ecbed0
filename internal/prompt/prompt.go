// Package prompt provides the small interactive prompts gitid needs: pick
// one option, enter a line of text, answer yes or no. Prompts render on
// stderr so stdout stays clean for command output.
package prompt

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	// ErrNotInteractive indicates stdin or stderr is not a terminal.
	ErrNotInteractive = errors.New("not running in an interactive terminal")

	// ErrCancelled indicates the user aborted the prompt.
	ErrCancelled = errors.New("prompt cancelled")
)

// IsInteractive reports whether prompts can be shown.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// Prompter shows prompts. Commands take one so tests can script answers.
type Prompter interface {
	Select(title string, options []string) (int, error)
	Text(title, defaultValue string, validate func(string) error) (string, error)
	Confirm(title string, defaultValue bool) (bool, error)
}

// Terminal is the Prompter backed by bubbletea programs.
type Terminal struct{}

// Select asks the user to pick one of options and returns its index.
func (Terminal) Select(title string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("select %q: no options", title)
	}
	m, err := run(newSelectModel(title, options))
	if err != nil {
		return -1, err
	}
	sm := m.(selectModel)
	if sm.cancelled {
		return -1, ErrCancelled
	}
	return sm.cursor, nil
}

// Text asks for a line of input. An empty answer yields defaultValue.
// validate, if non-nil, is checked before the prompt accepts the answer.
func (Terminal) Text(title, defaultValue string, validate func(string) error) (string, error) {
	m, err := run(newTextModel(title, defaultValue, validate))
	if err != nil {
		return "", err
	}
	tm := m.(textModel)
	if tm.cancelled {
		return "", ErrCancelled
	}
	return tm.answer, nil
}

// Confirm asks a yes/no question.
func (Terminal) Confirm(title string, defaultValue bool) (bool, error) {
	m, err := run(newConfirmModel(title, defaultValue))
	if err != nil {
		return false, err
	}
	cm := m.(confirmModel)
	if cm.cancelled {
		return false, ErrCancelled
	}
	return cm.answer, nil
}

func run(m tea.Model) (tea.Model, error) {
	if !IsInteractive() {
		return nil, ErrNotInteractive
	}
	final, err := tea.NewProgram(m, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return nil, fmt.Errorf("running prompt: %w", err)
	}
	return final, nil
}
