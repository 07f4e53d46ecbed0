package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/fsutil"
	"github.com/gitid-dev/gitid/internal/profile"
)

var initCmd = &cobra.Command{
	Use:     "init",
	GroupID: GroupProfiles,
	Short:   "Create an empty gitid config",
	Long: `Create the gitid config file if it does not exist.

The config lives at $GITID_CONFIG, or config.toml under the user config
directory (~/.config/gitid on Linux). An existing config is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := profile.ConfigPath()
	if err != nil {
		return err
	}

	created, err := profile.Init(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if created {
		printSuccess(out, "Created config at %s", fsutil.ContractHome(path))
	} else {
		_, _ = fmt.Fprintf(out, "Config already exists at %s\n", fsutil.ContractHome(path))
	}
	return nil
}
