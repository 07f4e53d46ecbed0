package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gitid-dev/gitid/internal/fsutil"
)

// EnvVarConfig overrides the config file location.
const EnvVarConfig = "GITID_CONFIG"

// ConfigPath returns the config file path: $GITID_CONFIG if set, otherwise
// <user config dir>/gitid/config.toml.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvVarConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "gitid", "config.toml"), nil
}

// Load reads the store from path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's config file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	store := NewStore()
	if _, err := toml.Decode(string(data), store); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if store.Profiles == nil {
		store.Profiles = make(map[string]Profile)
	}
	if err := store.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return store, nil
}

// Encode renders the store as TOML.
func Encode(store *Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(store); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the store to path atomically, creating parent directories.
func Save(path string, store *Store) error {
	return fsutil.WithLock(path, 0755, func() error {
		return write(path, store)
	})
}

// Update loads the store, applies fn and saves the result, holding the
// config lock throughout so concurrent gitid runs do not lose changes.
// Nothing is written if fn fails.
func Update(path string, fn func(*Store) error) (*Store, error) {
	var store *Store
	err := fsutil.WithLock(path, 0755, func() error {
		s, err := Load(path)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		store = s
		return write(path, s)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// write validates and writes store. The caller holds the lock.
func write(path string, store *Store) error {
	if err := store.Validate(); err != nil {
		return err
	}

	data, err := Encode(store)
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Init writes an empty config if none exists. It reports whether a file was
// created.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking config file %s: %w", path, err)
	}

	if err := Save(path, NewStore()); err != nil {
		return false, err
	}
	return true, nil
}

// LoadDefault loads the store from ConfigPath.
func LoadDefault() (*Store, string, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, "", err
	}
	store, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return store, path, nil
}
