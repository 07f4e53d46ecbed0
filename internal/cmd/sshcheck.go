package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/sshconfig"
	"github.com/gitid-dev/gitid/internal/style"
)

var sshCheckCmd = &cobra.Command{
	Use:     "ssh-check",
	GroupID: GroupSSH,
	Short:   "Check how ssh resolves each profile alias",
	Long: `Resolve every profile Host alias against the live SSH config.

ssh uses the first value it finds for each option, so a Host entry above
the managed block can shadow a gitid alias. ssh-check reports the HostName
and IdentityFile each alias actually resolves to.

Examples:
  gitid ssh-check`,
	Args: cobra.NoArgs,
	RunE: runSSHCheck,
}

func init() {
	rootCmd.AddCommand(sshCheckCmd)
}

func runSSHCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, _, err := loadStore()
	if err != nil {
		return err
	}
	if store.Len() == 0 {
		_, _ = fmt.Fprintln(out, "No profiles configured")
		return nil
	}

	syncer, err := sshConfigSyncer()
	if err != nil {
		return err
	}
	content, err := syncer.Read()
	if err != nil {
		return err
	}

	statuses, err := sshconfig.Check(content, store)
	if err != nil {
		return err
	}

	failed := 0
	for _, st := range statuses {
		if st.OK() {
			_, _ = fmt.Fprintf(out, "%s %s %s %s\n", style.SuccessPrefix, st.Alias, style.ArrowPrefix, st.ResolvedHostName)
			continue
		}
		failed++
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", style.ErrorPrefix, st.Alias, st.Problem)
	}

	if failed > 0 {
		_, _ = fmt.Fprintf(out, "\nRun %s to repair the managed block\n", style.Command.Render("gitid ssh-sync"))
		return fmt.Errorf("%d alias(es) do not resolve as expected", failed)
	}
	return nil
}
