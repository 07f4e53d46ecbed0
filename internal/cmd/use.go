package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/git"
	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/style"
)

var useCmd = &cobra.Command{
	Use:     "use [name]",
	GroupID: GroupRepo,
	Short:   "Apply a profile to the current repository",
	Long: `Apply a profile's identity to git config.

Sets user.name and user.email. When the profile has a GPG key, also sets
user.signingkey and enables commit.gpgsign; otherwise both are removed.

Without --global the identity is written to the current repository's
.git/config. With no name you are asked to pick; when no prompt can be
shown the default profile is used.

Examples:
  gitid use work
  gitid use personal --global`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

var useGlobal bool

func init() {
	rootCmd.AddCommand(useCmd)

	useCmd.Flags().BoolVarP(&useGlobal, "global", "g", false, "Set in ~/.gitconfig instead of the repository")
}

func runUse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, _, err := loadStore()
	if err != nil {
		return err
	}
	if err := requireProfiles(store); err != nil {
		return err
	}

	scope := git.Local
	if useGlobal {
		scope = git.Global
	}

	client := gitClient()
	if scope == git.Local && !client.IsRepo() {
		return errors.New("not in a git repository. Use --global to set globally")
	}

	if len(args) == 0 && store.DefaultProfile != "" && !deps.interactive() {
		args = []string{store.DefaultProfile}
	}
	name, p, err := selectProfile(store, args, "Select profile to use:")
	if err != nil {
		return err
	}

	if err := applyProfile(out, client, name, p, scope); err != nil {
		return err
	}
	return nil
}

// applyProfile writes p's identity at scope and prints what was set.
func applyProfile(out io.Writer, client *git.Client, name string, p profile.Profile, scope git.Scope) error {
	if err := client.ApplyIdentity(p.Name, p.Email, p.GPGKey, scope); err != nil {
		return err
	}
	deps.log.V(1).Info("applied identity", "profile", name, "scope", scope.String(), "dir", client.Dir())

	printSuccess(out, "Using profile '%s' (%s)", style.Profile.Render(name), scope)
	_, _ = fmt.Fprintln(out, style.Field("Name", p.Name))
	_, _ = fmt.Fprintln(out, style.Field("Email", p.Email))
	if p.HasGPG() {
		_, _ = fmt.Fprintln(out, style.Field("GPG Key", p.GPGKey))
	}
	return nil
}
