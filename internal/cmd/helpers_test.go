package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/prompt"
	"github.com/gitid-dev/gitid/internal/runner"
	"github.com/gitid-dev/gitid/internal/sshconfig"
	"github.com/gitid-dev/gitid/internal/sshkeys"
)

// testEnv points every file gitid touches into a temp dir and swaps in a
// mock runner and scripted prompter.
type testEnv struct {
	home       string
	configPath string
	sshConfig  string
	sshDir     string
	runner     *runner.MockRunner
	prompter   *prompt.Scripted
}

func setupEnv(t *testing.T, interactive bool) *testEnv {
	t.Helper()

	home := t.TempDir()
	env := &testEnv{
		home:       home,
		configPath: filepath.Join(home, ".config", "gitid", "config.toml"),
		sshConfig:  filepath.Join(home, ".ssh", "config"),
		sshDir:     filepath.Join(home, ".ssh"),
		runner:     runner.NewMockRunner(),
		prompter:   prompt.NewScripted(),
	}
	t.Setenv("HOME", home)
	t.Setenv(profile.EnvVarConfig, env.configPath)
	t.Setenv(sshconfig.EnvVarSSHConfig, env.sshConfig)
	t.Setenv(sshkeys.EnvVarSSHDir, env.sshDir)

	prev := deps
	deps = dependencies{
		runner:      env.runner,
		prompter:    env.prompter,
		interactive: func() bool { return interactive },
		log:         logr.Discard(),
	}
	t.Cleanup(func() { deps = prev })
	return env
}

// resetFlags restores every flag in the tree to its default so package
// level flag variables do not leak between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs gitid with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// seed writes profiles straight to the config file.
func (e *testEnv) seed(t *testing.T, defaultProfile string, profiles map[string]profile.Profile) {
	t.Helper()
	s := profile.NewStore()
	for name, p := range profiles {
		if err := s.Add(name, p); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	s.DefaultProfile = defaultProfile
	if err := profile.Save(e.configPath, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func (e *testEnv) load(t *testing.T) *profile.Store {
	t.Helper()
	s, err := profile.Load(e.configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

// writeKey creates a private key file with owner-only permissions.
func (e *testEnv) writeKey(t *testing.T, name string) string {
	t.Helper()
	if err := os.MkdirAll(e.sshDir, 0700); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(e.sshDir, name)
	if err := os.WriteFile(path, []byte("private"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func (e *testEnv) notARepo() {
	e.runner.On("git rev-parse --git-dir", "", runner.Failure("git rev-parse --git-dir", "fatal: not a git repository", 128))
}

func (e *testEnv) localIdentity(name, email string) {
	e.runner.On("git config --local --get user.name", name, nil)
	e.runner.On("git config --local --get user.email", email, nil)
}

func (e *testEnv) hasCall(cmdline string) bool {
	for _, c := range e.runner.CommandLines() {
		if c == cmdline {
			return true
		}
	}
	return false
}

var (
	workProfile = profile.Profile{
		Name:     "Jane Doe",
		Email:    "jane@corp.com",
		Platform: profile.PlatformGitHub,
		SSHKey:   "~/.ssh/id_ed25519_work",
	}
	personalProfile = profile.Profile{
		Name:     "Jane",
		Email:    "jane@home.net",
		Platform: profile.PlatformGitLab,
		SSHKey:   "~/.ssh/id_ed25519_personal",
		GPGKey:   "ABC123",
	}
)
