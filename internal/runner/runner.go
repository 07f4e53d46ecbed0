// Package runner executes the external tools gitid delegates to (git,
// ssh-keygen, gh, glab) behind an interface that tests can replace.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	// ErrNotInstalled indicates the executable was not found on PATH.
	ErrNotInstalled = errors.New("executable not found")

	// ErrFailed indicates the command ran and exited with a nonzero status.
	ErrFailed = errors.New("command failed")
)

// CommandRunner runs external commands.
type CommandRunner interface {
	// Run executes name with args in dir and returns trimmed stdout.
	Run(dir, name string, args ...string) (string, error)

	// RunInteractive executes name with the terminal attached.
	RunInteractive(dir, name string, args ...string) error
}

// Error wraps a command failure with context.
type Error struct {
	Cmd      string // Command line that was run
	Output   string // Trimmed stderr
	ExitCode int    // Exit status, -1 if the command never started
	Err      error  // ErrNotInstalled or ErrFailed (possibly wrapping the cause)
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Cmd + ": " + e.Output
	}
	return e.Cmd + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Failure builds the error a command returns when it exits with code.
func Failure(cmdline, output string, code int) error {
	return &Error{
		Cmd:      cmdline,
		Output:   output,
		ExitCode: code,
		Err:      fmt.Errorf("%w: exit status %d", ErrFailed, code),
	}
}

// NotInstalled builds the error returned when name is not on PATH.
func NotInstalled(name string) error {
	return &Error{
		Cmd:      name,
		ExitCode: -1,
		Err:      fmt.Errorf("%w: %s", ErrNotInstalled, name),
	}
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", classify(name, args, strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// RunInteractive implements CommandRunner.
func (r *ExecRunner) RunInteractive(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return classify(name, args, "", err)
	}
	return nil
}

// LookPath reports whether name is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func classify(name string, args []string, output string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return NotInstalled(name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Failure(CommandLine(name, args...), output, exitErr.ExitCode())
	}

	return &Error{
		Cmd:      CommandLine(name, args...),
		Output:   output,
		ExitCode: -1,
		Err:      err,
	}
}

// CommandLine renders name and args as a single space-separated string.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
