package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/auth"
	"github.com/gitid-dev/gitid/internal/style"
)

var authCmd = &cobra.Command{
	Use:     "auth [name]",
	GroupID: GroupProfiles,
	Short:   "Log in to the platform CLIs for a profile",
	Long: `Run the platform CLI login for a profile.

GitHub profiles run 'gh auth login --git-protocol ssh'; GitLab profiles run
'glab auth login'. Profiles for both run each in turn. A custom host is
passed with --hostname. Credentials are stored by gh and glab, not gitid.

Examples:
  gitid auth work
  gitid auth            # Pick a profile`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, _, err := loadStore()
	if err != nil {
		return err
	}
	if err := requireProfiles(store); err != nil {
		return err
	}

	name, p, err := selectProfile(store, args, "Select profile to authenticate:")
	if err != nil {
		return err
	}

	a := &auth.Authenticator{
		Runner: deps.runner,
		Out:    out,
		Log:    deps.log.WithName("auth"),
	}
	if err := a.Authenticate(p); err != nil {
		return err
	}
	printSuccess(out, "Authenticated profile '%s'", style.Profile.Render(name))
	return nil
}
