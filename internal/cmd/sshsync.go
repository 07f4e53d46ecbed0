package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/sshconfig"
	"github.com/gitid-dev/gitid/internal/style"
)

var sshSyncCmd = &cobra.Command{
	Use:     "ssh-sync",
	GroupID: GroupSSH,
	Short:   "Write profile Host aliases to ~/.ssh/config",
	Long: `Write one Host alias per profile into a managed block of ~/.ssh/config.

The block sits between "# === GITID MANAGED START ===" and
"# === GITID MANAGED END ===". It is replaced in place on every sync;
anything outside it is left byte-for-byte untouched. Use the aliases in
remote URLs, for example git@github-work:org/repo.git.

Set GITID_SSH_CONFIG to write a different file.

Examples:
  gitid ssh-sync
  gitid ssh-sync --dry-run     # Print the resulting file without writing`,
	Args: cobra.NoArgs,
	RunE: runSSHSync,
}

var sshSyncDryRun bool

func init() {
	rootCmd.AddCommand(sshSyncCmd)

	sshSyncCmd.Flags().BoolVar(&sshSyncDryRun, "dry-run", false, "Print the resulting SSH config instead of writing it")
}

func runSSHSync(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, _, err := loadStore()
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No profiles to sync")
		return nil
	}

	syncer, err := sshConfigSyncer()
	if err != nil {
		return err
	}

	if sshSyncDryRun {
		content, _, err := syncer.Preview(store)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, content)
		return nil
	}

	count, updated, err := syncer.Sync(store)
	if err != nil {
		return err
	}

	verb := "Added"
	if updated {
		verb = "Updated"
	}
	printSuccess(out, "%s SSH config with %d profile(s)", verb, count)
	_, _ = fmt.Fprintln(out, style.Field("File", syncer.Path))
	_, _ = fmt.Fprintln(out)
	for _, e := range sshconfig.StoreEntries(store) {
		_, _ = fmt.Fprintf(out, "    %s %s %s\n", style.Profile.Render(e.Alias), style.ArrowPrefix, e.HostName)
	}
	return nil
}
