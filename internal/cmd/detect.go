package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/detect"
	"github.com/gitid-dev/gitid/internal/git"
	"github.com/gitid-dev/gitid/internal/style"
)

var detectCmd = &cobra.Command{
	Use:     "detect",
	GroupID: GroupRepo,
	Short:   "Pick a profile from the repository's remote URLs",
	Long: `Detect which profile a repository belongs to from its remotes.

Every remote URL is scored against every profile. SSH Host aliases written
by 'gitid ssh-sync' (git-<name>, github-<name>, gitlab-<name>) are the
strongest signal, followed by custom hosts and the platform's default host.
Ties go to the profile whose name sorts first.

With --auto the match is applied without asking. When nothing matches and
a terminal is attached you can pick a profile by hand.

Examples:
  gitid detect
  gitid detect --auto`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

var detectAuto bool

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVarP(&detectAuto, "auto", "a", false, "Apply the detected profile without confirmation")
}

func runDetect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	client := gitClient()
	if !client.IsRepo() {
		return errors.New("not in a git repository")
	}

	store, _, err := loadStore()
	if err != nil {
		return err
	}
	if err := requireProfiles(store); err != nil {
		return err
	}

	res, err := detect.New(client, deps.log.WithName("detect")).Detect(store)
	if err != nil {
		return err
	}

	if res == nil {
		_, _ = fmt.Fprintln(out, "No matching profile found")
		if url, ok, err := client.RemoteURL("origin"); err == nil && ok {
			_, _ = fmt.Fprintln(out, style.Field("Remote", url))
		}
		if detectAuto || !deps.interactive() {
			return nil
		}

		ok, err := deps.prompter.Confirm("Select a profile manually?", true)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		name, p, err := selectProfile(store, nil, "Select profile to use:")
		if err != nil {
			return err
		}
		return applyProfile(out, client, name, p, git.Local)
	}

	_, _ = fmt.Fprintf(out, "%s Match: %s\n", style.ArrowPrefix, style.Profile.Render(res.Profile))
	_, _ = fmt.Fprintln(out, style.Field("Reason", res.Reason))
	_, _ = fmt.Fprintln(out, style.Field("Remote", res.Remote))

	if !detectAuto {
		if !deps.interactive() {
			_, _ = fmt.Fprintf(out, "Run %s to apply it\n", style.Command.Render("gitid use "+res.Profile))
			return nil
		}
		ok, err := deps.prompter.Confirm(fmt.Sprintf("Apply profile '%s'?", res.Profile), true)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Cancelled")
			return nil
		}
	}

	return applyProfile(out, client, res.Profile, store.Profiles[res.Profile], git.Local)
}
