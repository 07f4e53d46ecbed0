package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/style"
	"github.com/gitid-dev/gitid/internal/user"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	GroupID: GroupProfiles,
	Short:   "List all configured profiles",
	Long: `List all configured profiles.

In text output the profile matching the current git identity is marked
with an asterisk (*) and the default profile with (default). JSON and YAML
output carry the same information for scripts.

Examples:
  gitid list
  gitid list --format json | jq '.[].email'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, json, or yaml")
}

// listEntry is one profile in json/yaml output.
type listEntry struct {
	ID      string `json:"id" yaml:"id"`
	Current bool   `json:"current" yaml:"current"`
	Default bool   `json:"default" yaml:"default"`

	profile.Profile `yaml:",inline"`
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch listFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid --format %q: must be text, json, or yaml", listFormat)
	}

	store, _, err := loadStore()
	if err != nil {
		return err
	}

	var current string
	client := gitClient()
	if client.IsRepo() {
		name, ok, _, err := user.Current(store, client)
		if err != nil {
			return err
		}
		if ok {
			current = name
		}
	}

	entries := make([]listEntry, 0, store.Len())
	for _, name := range store.Names() {
		entries = append(entries, listEntry{
			ID:      name,
			Current: name == current,
			Default: name == store.DefaultProfile,
			Profile: store.Profiles[name],
		})
	}

	switch listFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	printProfiles(out, entries)
	return nil
}

func printProfiles(out io.Writer, entries []listEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "No profiles configured")
		_, _ = fmt.Fprintf(out, "Run %s to add a profile\n", style.Command.Render("gitid add"))
		return
	}

	_, _ = fmt.Fprintln(out, style.Bold.Render("Profiles:"))
	_, _ = fmt.Fprintln(out)
	for _, e := range entries {
		marker := " "
		if e.Current {
			marker = style.CurrentMarker
		}
		def := ""
		if e.Default {
			def = style.Dim.Render(" (default)")
		}

		_, _ = fmt.Fprintf(out, "%s %s%s\n", marker, style.Profile.Render(e.ID), def)
		_, _ = fmt.Fprintln(out, style.Field("Name", e.Name))
		_, _ = fmt.Fprintln(out, style.Field("Email", e.Email))
		_, _ = fmt.Fprintln(out, style.Field("Platform", e.Platform.DisplayName()))
		_, _ = fmt.Fprintln(out, style.Field("SSH Key", e.SSHKey))
		if e.GPGKey != "" {
			_, _ = fmt.Fprintln(out, style.Field("GPG Key", e.GPGKey))
		}
		if e.Host != "" {
			_, _ = fmt.Fprintln(out, style.Field("Host", e.Host))
		}
		_, _ = fmt.Fprintln(out)
	}
}
