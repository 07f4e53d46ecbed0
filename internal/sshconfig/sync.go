package sshconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/gitid-dev/gitid/internal/fsutil"
	"github.com/gitid-dev/gitid/internal/profile"
)

// EnvVarSSHConfig overrides the SSH config location.
const EnvVarSSHConfig = "GITID_SSH_CONFIG"

const (
	sshDirPerm  os.FileMode = 0700
	sshFilePerm os.FileMode = 0600
)

// DefaultPath returns $GITID_SSH_CONFIG if set, otherwise ~/.ssh/config.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvVarSSHConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Syncer writes the managed block into an SSH config file.
type Syncer struct {
	Path string
	Log  logr.Logger
}

// NewSyncer returns a syncer for path.
func NewSyncer(path string, log logr.Logger) *Syncer {
	return &Syncer{Path: path, Log: log}
}

// Read returns the current file content, "" if the file does not exist.
func (s *Syncer) Read() (string, error) {
	content, err := fsutil.ReadFileOrEmpty(s.Path)
	if err != nil {
		return "", fmt.Errorf("reading SSH config %s: %w", s.Path, err)
	}
	return content, nil
}

// Preview returns the content Sync would write and whether it would replace
// an existing managed block.
func (s *Syncer) Preview(store *profile.Store) (string, bool, error) {
	current, err := s.Read()
	if err != nil {
		return "", false, err
	}
	merged, replaced := Merge(current, GenerateManagedBlock(store))
	return merged, replaced, nil
}

// Sync rewrites the managed block from store. count is the number of
// profiles, not stanzas; wasUpdate reports whether a block was replaced
// rather than appended.
func (s *Syncer) Sync(store *profile.Store) (count int, wasUpdate bool, err error) {
	err = fsutil.WithLock(s.Path, sshDirPerm, func() error {
		current, err := s.Read()
		if err != nil {
			return err
		}

		merged, replaced := Merge(current, GenerateManagedBlock(store))
		if merged == current {
			s.Log.V(1).Info("SSH config already up to date", "path", s.Path)
		} else if err := fsutil.WriteFileAtomic(s.Path, []byte(merged), sshFilePerm); err != nil {
			return fmt.Errorf("writing SSH config %s: %w", s.Path, err)
		}

		s.Log.V(1).Info("synced SSH config", "path", s.Path, "profiles", store.Len(), "replaced", replaced)
		wasUpdate = replaced
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return store.Len(), wasUpdate, nil
}
