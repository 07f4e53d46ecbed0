package git

import "errors"

// Git operation errors.
var (
	// ErrNotGitRepo indicates the directory is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrGitNotInstalled indicates the git executable could not be found.
	ErrGitNotInstalled = errors.New("git is not installed or not on PATH")
)

// Error wraps a failed git operation with context.
type Error struct {
	Op  string // Operation that failed (e.g., "set user.email")
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
