package auth

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/runner"
)

func TestTool_LoginArgs(t *testing.T) {
	tests := []struct {
		name string
		tool Tool
		host string
		want []string
	}{
		{"gh default", GitHubCLI, "", []string{"auth", "login", "--git-protocol", "ssh"}},
		{"gh github.com", GitHubCLI, "github.com", []string{"auth", "login", "--git-protocol", "ssh"}},
		{"gh enterprise", GitHubCLI, "ghe.corp.com", []string{"auth", "login", "--hostname", "ghe.corp.com", "--git-protocol", "ssh"}},
		{"glab default", GitLabCLI, "", []string{"auth", "login"}},
		{"glab self-hosted", GitLabCLI, "gitlab.corp.com", []string{"auth", "login", "--hostname", "gitlab.corp.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tool.LoginArgs(tt.host); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoginArgs(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestAuthenticate_GitHub(t *testing.T) {
	m := runner.NewMockRunner()
	a := &Authenticator{Runner: m, Log: logr.Discard()}

	err := a.Authenticate(profile.Profile{Platform: profile.PlatformGitHub, Host: "ghe.corp.com"})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	calls := m.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %v, want version check and login", m.CommandLines())
	}
	if calls[0].CommandLine() != "gh --version" || calls[0].Interactive {
		t.Errorf("first call = %+v", calls[0])
	}
	if calls[1].CommandLine() != "gh auth login --hostname ghe.corp.com --git-protocol ssh" || !calls[1].Interactive {
		t.Errorf("login call = %+v", calls[1])
	}
}

func TestAuthenticate_Both(t *testing.T) {
	m := runner.NewMockRunner()
	var out bytes.Buffer
	a := &Authenticator{Runner: m, Out: &out, Log: logr.Discard()}

	if err := a.Authenticate(profile.Profile{Platform: profile.PlatformBoth}); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	want := []string{
		"gh --version",
		"gh auth login --git-protocol ssh",
		"glab --version",
		"glab auth login",
	}
	if got := m.CommandLines(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
	if got := out.String(); got != "Authenticating GitHub...\n\nAuthenticating GitLab...\n" {
		t.Errorf("progress output = %q", got)
	}
}

func TestAuthenticate_NotInstalled(t *testing.T) {
	m := runner.NewMockRunner()
	m.On("glab --version", "", runner.NotInstalled("glab"))
	a := &Authenticator{Runner: m, Log: logr.Discard()}

	err := a.Authenticate(profile.Profile{Platform: profile.PlatformGitLab})
	if !errors.Is(err, ErrToolNotInstalled) {
		t.Fatalf("expected ErrToolNotInstalled, got: %v", err)
	}
	if !strings.Contains(err.Error(), "https://gitlab.com/gitlab-org/cli") {
		t.Errorf("error should name the install URL: %v", err)
	}
	if len(m.Calls()) != 1 {
		t.Errorf("login should not run, calls = %v", m.CommandLines())
	}
}

func TestAuthenticate_LoginFails(t *testing.T) {
	m := runner.NewMockRunner()
	m.On("gh auth login --git-protocol ssh", "", runner.Failure("gh auth login --git-protocol ssh", "", 1))
	a := &Authenticator{Runner: m, Log: logr.Discard()}

	err := a.Authenticate(profile.Profile{Platform: profile.PlatformBoth})
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got: %v", err)
	}
	if !errors.Is(err, runner.ErrFailed) {
		t.Errorf("expected wrapped runner.ErrFailed, got: %v", err)
	}
	for _, c := range m.CommandLines() {
		if strings.HasPrefix(c, "glab") {
			t.Errorf("GitLab login should not run after GitHub fails: %v", m.CommandLines())
		}
	}
}
