package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/doctor"
	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/sshconfig"
	"github.com/gitid-dev/gitid/internal/style"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	GroupID: GroupDiag,
	Short:   "Check the gitid setup for problems",
	Long: `Run health checks over the gitid setup.

Checks:
  config       Profile config loads and validates
  ssh-keys     Every profile's SSH key exists with private permissions
  ssh-config   The managed SSH config block is current
  tools        git is installed, plus gh/glab when a profile needs them

With --fix, checks that can repair themselves do so.

Examples:
  gitid doctor
  gitid doctor --fix`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFix bool

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair problems that can be fixed automatically")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	configPath, err := profile.ConfigPath()
	if err != nil {
		return err
	}
	sshPath, err := sshconfig.DefaultPath()
	if err != nil {
		return err
	}

	ctx := &doctor.CheckContext{
		ConfigPath:    configPath,
		SSHConfigPath: sshPath,
		Runner:        deps.runner,
		Log:           deps.log.WithName("doctor"),
	}
	ctx.Store, ctx.StoreErr = profile.Load(configPath)

	report := doctor.Run(ctx, doctor.DefaultChecks(), doctorFix)
	printReport(out, report)

	if report.HasErrors() {
		return errors.New("doctor found problems")
	}
	return nil
}

func printReport(out io.Writer, r *doctor.Report) {
	for _, res := range r.Results {
		prefix := style.SuccessPrefix
		switch res.Status {
		case doctor.StatusWarning:
			prefix = style.WarningPrefix
		case doctor.StatusError:
			prefix = style.ErrorPrefix
		}

		line := fmt.Sprintf("%s %s: %s", prefix, res.Name, res.Message)
		if res.Fixed {
			line += style.Dim.Render(" (fixed)")
		}
		_, _ = fmt.Fprintln(out, line)
		for _, d := range res.Details {
			_, _ = fmt.Fprintf(out, "    %s\n", d)
		}
		if res.Status != doctor.StatusOK && res.FixHint != "" {
			_, _ = fmt.Fprintf(out, "    %s %s\n", style.ArrowPrefix, res.FixHint)
		}
	}

	_, _ = fmt.Fprintln(out)
	summary := fmt.Sprintf("%d passed, %d warning(s), %d error(s)", r.OK, r.Warnings, r.Errors)
	if r.Fixed > 0 {
		summary += fmt.Sprintf(", %d fixed", r.Fixed)
	}
	_, _ = fmt.Fprintln(out, summary)
}
