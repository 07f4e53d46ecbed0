package runner

import (
	"errors"
	"testing"
)

func TestExecRunner_Run_Success(t *testing.T) {
	r := NewExecRunner()
	out, err := r.Run("", "echo", "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hello" {
		t.Errorf("output = %q, want %q", out, "hello")
	}
}

func TestExecRunner_Run_NotInstalled(t *testing.T) {
	r := NewExecRunner()
	_, err := r.Run("", "gitid-definitely-not-a-real-binary")
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("expected ErrNotInstalled, got: %v", err)
	}
}

func TestExecRunner_Run_Failure(t *testing.T) {
	r := NewExecRunner()
	_, err := r.Run("", "sh", "-c", "echo boom >&2; exit 3")
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got: %v", err)
	}

	var runErr *Error
	if !errors.As(err, &runErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if runErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", runErr.ExitCode)
	}
	if runErr.Output != "boom" {
		t.Errorf("output = %q, want %q", runErr.Output, "boom")
	}
}

func TestMockRunner(t *testing.T) {
	m := NewMockRunner()
	m.On("git remote", "origin", nil)
	m.On("git config --get user.name", "", Failure("git config --get user.name", "", 1))

	out, err := m.Run("/repo", "git", "remote")
	if err != nil || out != "origin" {
		t.Errorf("Run(git remote) = %q, %v", out, err)
	}

	if _, err := m.Run("", "git", "config", "--get", "user.name"); !errors.Is(err, ErrFailed) {
		t.Errorf("expected ErrFailed, got: %v", err)
	}

	if err := m.RunInteractive("", "gh", "auth", "login"); err != nil {
		t.Errorf("unknown command should succeed, got: %v", err)
	}

	calls := m.Calls()
	if len(calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(calls))
	}
	if calls[0].Dir != "/repo" {
		t.Errorf("dir = %q, want %q", calls[0].Dir, "/repo")
	}
	if !calls[2].Interactive {
		t.Error("third call should be interactive")
	}
}
