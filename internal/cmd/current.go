package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/style"
	"github.com/gitid-dev/gitid/internal/user"
)

var currentCmd = &cobra.Command{
	Use:     "current",
	GroupID: GroupRepo,
	Short:   "Show the profile in effect for the current repository",
	Long: `Show which profile matches the git identity in effect.

The local repository identity is checked first; the global identity is
used only when neither local user.name nor user.email is set. A profile
matches when both name and email are equal.

With --porcelain only the profile name is printed, or nothing when no
profile matches. This is meant for shell prompts.

Examples:
  gitid current
  PS1='$(gitid current --porcelain) $ '`,
	Args: cobra.NoArgs,
	RunE: runCurrent,
}

var currentPorcelain bool

func init() {
	rootCmd.AddCommand(currentCmd)

	currentCmd.Flags().BoolVar(&currentPorcelain, "porcelain", false, "Print only the profile name")
}

func runCurrent(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	client := gitClient()
	if !client.IsRepo() {
		if !currentPorcelain {
			_, _ = fmt.Fprintln(out, "Not in a git repository")
		}
		return nil
	}

	store, _, err := loadStore()
	if err != nil {
		return err
	}

	name, ok, id, err := user.Current(store, client)
	if err != nil {
		return err
	}

	if currentPorcelain {
		if ok {
			_, _ = fmt.Fprintln(out, name)
		}
		return nil
	}

	if !ok {
		if id.IsEmpty() {
			_, _ = fmt.Fprintln(out, "No git identity configured")
		} else {
			_, _ = fmt.Fprintf(out, "No profile matches %s <%s> (%s)\n", id.Name, id.Email, id.Source)
		}
		_, _ = fmt.Fprintf(out, "Run %s to apply one\n", style.Command.Render("gitid use"))
		return nil
	}

	p := store.Profiles[name]
	_, _ = fmt.Fprintf(out, "%s %s %s\n", style.CurrentMarker, style.Profile.Render(name), style.Dim.Render("("+id.Source+")"))
	_, _ = fmt.Fprintln(out, style.Field("Name", p.Name))
	_, _ = fmt.Fprintln(out, style.Field("Email", p.Email))
	_, _ = fmt.Fprintln(out, style.Field("Platform", p.Platform.DisplayName()))
	_, _ = fmt.Fprintln(out, style.Field("SSH Key", p.SSHKey))
	if p.HasGPG() {
		_, _ = fmt.Fprintln(out, style.Field("GPG Key", p.GPGKey))
	}
	return nil
}
