// Package fsutil provides locked, atomic whole-file rewrites for files that
// gitid shares with other tools (its own config and ~/.ssh/config).
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ReadFileOrEmpty returns the file content, or "" if the file does not exist.
func ReadFileOrEmpty(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user config location
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// LockPath returns the advisory lock file used to guard path.
func LockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}

// WithLock runs fn while holding an exclusive advisory lock for path.
// The parent directory is created with dirPerm if it is missing.
func WithLock(path string, dirPerm os.FileMode, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// WriteFileAtomic replaces path with data by writing a temporary file in the
// same directory and renaming it over the target. An existing file keeps its
// permission bits; a new file gets perm.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	// Write through symlinks (dotfile managers often link ~/.ssh/config).
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm) //nolint:gosec // G304: tmp is derived from path
	if err != nil {
		return err
	}

	cleanup := func() { _ = os.Remove(tmp) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		cleanup()
		return err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return err
	}
	// OpenFile is subject to umask; make the final mode exact.
	if err := os.Chmod(tmp, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ContractHome renders path with the home directory replaced by "~".
func ContractHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || filepath.IsAbs(rel) || hasParentPrefix(rel) {
		return path
	}
	if rel == "." {
		return "~"
	}
	return "~/" + filepath.ToSlash(rel)
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && (rel[2] == '/' || rel[2] == filepath.Separator)
}
