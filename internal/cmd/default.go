package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/style"
)

var defaultCmd = &cobra.Command{
	Use:     "default [name]",
	GroupID: GroupProfiles,
	Short:   "Show or set the default profile",
	Long: `Show, set, or clear the default profile.

The default profile is marked in 'gitid list' and is what 'gitid use'
applies when no name is given and no prompt can be shown.

Examples:
  gitid default            # Show the default profile
  gitid default work       # Make 'work' the default
  gitid default --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDefault,
}

var defaultClear bool

func init() {
	rootCmd.AddCommand(defaultCmd)

	defaultCmd.Flags().BoolVar(&defaultClear, "clear", false, "Unset the default profile")
}

func runDefault(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if defaultClear && len(args) > 0 {
		return fmt.Errorf("--clear does not take a profile name")
	}

	store, path, err := loadStore()
	if err != nil {
		return err
	}

	if defaultClear {
		if _, err := profile.Update(path, func(s *profile.Store) error {
			s.DefaultProfile = ""
			return nil
		}); err != nil {
			return err
		}
		printSuccess(out, "Cleared default profile")
		return nil
	}

	if len(args) == 0 {
		if store.DefaultProfile == "" {
			_, _ = fmt.Fprintln(out, "No default profile set")
			return nil
		}
		_, _ = fmt.Fprintln(out, store.DefaultProfile)
		return nil
	}

	name := args[0]
	if _, err := profile.Update(path, func(s *profile.Store) error {
		return s.SetDefault(name)
	}); err != nil {
		return err
	}
	printSuccess(out, "Default profile set to '%s'", style.Profile.Render(name))
	return nil
}
