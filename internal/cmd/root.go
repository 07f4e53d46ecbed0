// Package cmd implements the gitid command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/git"
	"github.com/gitid-dev/gitid/internal/logging"
	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/prompt"
	"github.com/gitid-dev/gitid/internal/runner"
	"github.com/gitid-dev/gitid/internal/sshconfig"
	"github.com/gitid-dev/gitid/internal/style"
)

// Command groups shown in help.
const (
	GroupProfiles = "profiles"
	GroupRepo     = "repo"
	GroupSSH      = "ssh"
	GroupDiag     = "diag"
)

// Build metadata, set with -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gitid",
	Short: "Manage multiple Git identities across GitHub and GitLab",
	Long: `gitid keeps named git identities (name, email, SSH key, optional GPG
key) and switches repositories between them.

It can detect the right identity from a repository's remotes and keeps
per-profile Host aliases in ~/.ssh/config so each identity uses its own key.

Examples:
  gitid add work                 # Create a profile interactively
  gitid use work                 # Apply it to the current repository
  gitid detect --auto            # Pick a profile from the remote URL
  gitid ssh-sync                 # Write Host aliases to ~/.ssh/config`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		deps.log = logging.New(cmd.ErrOrStderr(), verbose)
	},
}

// dependencies are the collaborators commands use. Tests replace them.
type dependencies struct {
	runner      runner.CommandRunner
	prompter    prompt.Prompter
	interactive func() bool
	workDir     string
	log         logr.Logger
}

func defaultDeps() dependencies {
	return dependencies{
		runner:      runner.NewExecRunner(),
		prompter:    prompt.Terminal{},
		interactive: prompt.IsInteractive,
		log:         logr.Discard(),
	}
}

var deps = defaultDeps()

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupProfiles, Title: "Profile Commands:"},
		&cobra.Group{ID: GroupRepo, Title: "Repository Commands:"},
		&cobra.Group{ID: GroupSSH, Title: "SSH Commands:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostic Commands:"},
	)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostic detail to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func gitClient() *git.Client {
	return git.NewClient(deps.workDir, git.WithRunner(deps.runner))
}

// loadStore loads the profile config from its default location.
func loadStore() (*profile.Store, string, error) {
	return profile.LoadDefault()
}

func requireProfiles(store *profile.Store) error {
	if store.Len() == 0 {
		return errors.New("no profiles configured. Run 'gitid add' first")
	}
	return nil
}

// selectProfile returns args[0] if given, otherwise asks the user to pick.
// The name must exist in store.
func selectProfile(store *profile.Store, args []string, title string) (string, profile.Profile, error) {
	var name string
	if len(args) > 0 {
		name = args[0]
	} else {
		if !deps.interactive() {
			return "", profile.Profile{}, errors.New("profile name required when not running interactively")
		}
		names := store.Names()
		idx, err := deps.prompter.Select(title, names)
		if err != nil {
			return "", profile.Profile{}, err
		}
		name = names[idx]
	}

	p, err := store.Get(name)
	if err != nil {
		return "", profile.Profile{}, err
	}
	return name, p, nil
}

func sshConfigSyncer() (*sshconfig.Syncer, error) {
	path, err := sshconfig.DefaultPath()
	if err != nil {
		return nil, err
	}
	return sshconfig.NewSyncer(path, deps.log.WithName("ssh-sync")), nil
}

func printSuccess(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.SuccessPrefix, fmt.Sprintf(format, a...))
}

func printWarning(w io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", style.WarningPrefix, fmt.Sprintf(format, a...))
}
