// Package auth logs the platform CLIs (gh, glab) in for a profile. The
// login flows are interactive and run with the terminal attached.
package auth

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/runner"
)

var (
	// ErrToolNotInstalled indicates the platform CLI is not on PATH.
	ErrToolNotInstalled = errors.New("CLI tool is not installed")

	// ErrAuthFailed indicates the login command exited unsuccessfully.
	ErrAuthFailed = errors.New("authentication failed")
)

// Tool describes a platform CLI.
type Tool struct {
	// Command is the executable name.
	Command string

	// Label is the human-readable name, e.g. "GitHub CLI (gh)".
	Label string

	// InstallURL is where to get the tool.
	InstallURL string

	// DefaultHost is the host that needs no --hostname flag.
	DefaultHost string

	platform string
	extra    []string
}

// The supported platform CLIs.
var (
	GitHubCLI = Tool{
		Command:     "gh",
		Label:       "GitHub CLI (gh)",
		InstallURL:  "https://cli.github.com/",
		DefaultHost: profile.GitHubHost,
		platform:    "GitHub",
		extra:       []string{"--git-protocol", "ssh"},
	}
	GitLabCLI = Tool{
		Command:     "glab",
		Label:       "GitLab CLI (glab)",
		InstallURL:  "https://gitlab.com/gitlab-org/cli",
		DefaultHost: profile.GitLabHost,
		platform:    "GitLab",
	}
)

// LoginArgs returns the login arguments for host. An empty host or the
// tool's default host adds no --hostname flag.
func (t Tool) LoginArgs(host string) []string {
	args := []string{"auth", "login"}
	if host != "" && host != t.DefaultHost {
		args = append(args, "--hostname", host)
	}
	return append(args, t.extra...)
}

// ToolsFor returns the CLIs a platform needs, in login order.
func ToolsFor(p profile.Platform) []Tool {
	switch p {
	case profile.PlatformGitHub:
		return []Tool{GitHubCLI}
	case profile.PlatformGitLab:
		return []Tool{GitLabCLI}
	case profile.PlatformBoth:
		return []Tool{GitHubCLI, GitLabCLI}
	}
	return nil
}

// Authenticator runs CLI logins.
type Authenticator struct {
	Runner runner.CommandRunner

	// Out receives progress lines between logins.
	Out io.Writer

	Log logr.Logger
}

// Installed reports whether t responds to --version.
func (a *Authenticator) Installed(t Tool) bool {
	_, err := a.Runner.Run("", t.Command, "--version")
	return err == nil
}

// Login runs the interactive login for one tool.
func (a *Authenticator) Login(t Tool, host string) error {
	if !a.Installed(t) {
		return fmt.Errorf("%w: %s. Install it from %s", ErrToolNotInstalled, t.Label, t.InstallURL)
	}

	args := t.LoginArgs(host)
	a.Log.V(1).Info("running login", "command", runner.CommandLine(t.Command, args...))
	if err := a.Runner.RunInteractive("", t.Command, args...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAuthFailed, t.platform, err)
	}
	return nil
}

// Authenticate logs in every CLI the profile's platform needs. The
// profile's custom host, if any, is passed to each tool.
func (a *Authenticator) Authenticate(p profile.Profile) error {
	tools := ToolsFor(p.Platform)
	for i, t := range tools {
		if len(tools) > 1 && a.Out != nil {
			if i > 0 {
				_, _ = fmt.Fprintln(a.Out)
			}
			_, _ = fmt.Fprintf(a.Out, "Authenticating %s...\n", t.platform)
		}
		if err := a.Login(t, p.Host); err != nil {
			return err
		}
	}
	return nil
}
