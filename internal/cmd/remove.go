package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/style"
)

var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	GroupID: GroupProfiles,
	Short:   "Remove a profile",
	Long: `Remove a profile from the config.

Removing the default profile clears the default. With --clean-ssh the
managed SSH config block is re-synced so the profile's Host aliases go away.

Examples:
  gitid remove old-client
  gitid remove old-client --force --clean-ssh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

var (
	removeForce    bool
	removeCleanSSH bool
)

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
	removeCmd.Flags().BoolVar(&removeCleanSSH, "clean-ssh", false, "Also remove the profile's SSH Host aliases")
}

func runRemove(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, path, err := loadStore()
	if err != nil {
		return err
	}
	if err := requireProfiles(store); err != nil {
		return err
	}

	name, _, err := selectProfile(store, args, "Select profile to remove:")
	if err != nil {
		return err
	}

	if !removeForce {
		if !deps.interactive() {
			return fmt.Errorf("refusing to remove '%s' without confirmation; pass --force", name)
		}
		ok, err := deps.prompter.Confirm(fmt.Sprintf("Remove profile '%s'?", name), false)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	store, err = profile.Update(path, func(s *profile.Store) error {
		_, err := s.Remove(name)
		return err
	})
	if err != nil {
		return err
	}
	printSuccess(out, "Removed profile '%s'", style.Profile.Render(name))

	if removeCleanSSH {
		syncer, err := sshConfigSyncer()
		if err != nil {
			return err
		}
		if _, _, err := syncer.Sync(store); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "SSH config updated")
	}
	return nil
}
