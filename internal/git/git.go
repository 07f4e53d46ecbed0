// Package git reads repository remotes and reads and writes the git identity
// settings that gitid manages.
package git

import (
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"

	"github.com/gitid-dev/gitid/internal/runner"
)

// Scope selects which git config file an operation targets.
type Scope int

const (
	// Local is the repository's .git/config.
	Local Scope = iota

	// Global is the user's ~/.gitconfig.
	Global
)

// Flag returns the git config flag for the scope.
func (s Scope) Flag() string {
	if s == Global {
		return "--global"
	}
	return "--local"
}

func (s Scope) String() string {
	if s == Global {
		return "global"
	}
	return "local"
}

// Git config keys written by ApplyIdentity.
const (
	KeyUserName   = "user.name"
	KeyUserEmail  = "user.email"
	KeySigningKey = "user.signingkey"
	KeyGPGSign    = "commit.gpgsign"
)

// Client runs git operations for a working directory.
type Client struct {
	dir    string
	runner runner.CommandRunner
}

// Option configures Client.
type Option func(*Client)

// WithRunner sets the command runner used for git subprocesses.
func WithRunner(r runner.CommandRunner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// NewClient returns a client for dir. An empty dir means the process
// working directory.
func NewClient(dir string, opts ...Option) *Client {
	c := &Client{
		dir:    dir,
		runner: runner.NewExecRunner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the working directory the client operates in.
func (c *Client) Dir() string {
	return c.dir
}

// IsRepo reports whether the working directory is inside a git repository.
func (c *Client) IsRepo() bool {
	_, err := c.runner.Run(c.dir, "git", "rev-parse", "--git-dir")
	return err == nil
}

func (c *Client) open() (*gogit.Repository, error) {
	dir := c.dir
	if dir == "" {
		dir = "."
	}
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, ErrNotGitRepo
		}
		return nil, &Error{Op: "open repository", Err: err}
	}
	return repo, nil
}

// ListRemotes returns the configured remote names in sorted order.
func (c *Client) ListRemotes() ([]string, error) {
	repo, err := c.open()
	if err != nil {
		return nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, &Error{Op: "list remotes", Err: err}
	}

	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// RemoteURL returns the first URL of the named remote. ok is false when the
// remote does not exist or has no URL.
func (c *Client) RemoteURL(name string) (url string, ok bool, err error) {
	repo, err := c.open()
	if err != nil {
		return "", false, err
	}

	remote, err := repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", false, nil
		}
		return "", false, &Error{Op: "get remote " + name, Err: err}
	}

	urls := remote.Config().URLs
	if len(urls) == 0 || urls[0] == "" {
		return "", false, nil
	}
	return urls[0], true, nil
}

// Get reads a config value. ok is false when the key is unset.
func (c *Client) Get(key string, scope Scope) (value string, ok bool, err error) {
	out, err := c.runner.Run(c.dir, "git", "config", scope.Flag(), "--get", key)
	if err != nil {
		if errors.Is(err, runner.ErrNotInstalled) {
			return "", false, ErrGitNotInstalled
		}
		if errors.Is(err, runner.ErrFailed) {
			return "", false, nil
		}
		return "", false, &Error{Op: "get " + key, Err: err}
	}
	return out, true, nil
}

// Set writes a config value.
func (c *Client) Set(key, value string, scope Scope) error {
	if _, err := c.runner.Run(c.dir, "git", "config", scope.Flag(), key, value); err != nil {
		if errors.Is(err, runner.ErrNotInstalled) {
			return ErrGitNotInstalled
		}
		return &Error{Op: fmt.Sprintf("set %s = %s", key, value), Err: err}
	}
	return nil
}

// Unset removes a config value. Removing a key that was never set is not an
// error.
func (c *Client) Unset(key string, scope Scope) error {
	if _, err := c.runner.Run(c.dir, "git", "config", scope.Flag(), "--unset", key); err != nil {
		if errors.Is(err, runner.ErrNotInstalled) {
			return ErrGitNotInstalled
		}
		if errors.Is(err, runner.ErrFailed) {
			return nil
		}
		return &Error{Op: "unset " + key, Err: err}
	}
	return nil
}

// Identity returns user.name and user.email for the scope; empty strings mean
// unset.
func (c *Client) Identity(scope Scope) (name, email string, err error) {
	name, _, err = c.Get(KeyUserName, scope)
	if err != nil {
		return "", "", err
	}
	email, _, err = c.Get(KeyUserEmail, scope)
	if err != nil {
		return "", "", err
	}
	return name, email, nil
}

// ApplyIdentity sets user.name and user.email. With a GPG key it also sets
// user.signingkey and enables commit.gpgsign; without one it removes both.
func (c *Client) ApplyIdentity(name, email, gpgKey string, scope Scope) error {
	if err := c.Set(KeyUserName, name, scope); err != nil {
		return err
	}
	if err := c.Set(KeyUserEmail, email, scope); err != nil {
		return err
	}

	if gpgKey != "" {
		if err := c.Set(KeySigningKey, gpgKey, scope); err != nil {
			return err
		}
		return c.Set(KeyGPGSign, "true", scope)
	}

	if err := c.Unset(KeySigningKey, scope); err != nil {
		return err
	}
	return c.Unset(KeyGPGSign, scope)
}
