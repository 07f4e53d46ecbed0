package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitid-dev/gitid/internal/fsutil"
	"github.com/gitid-dev/gitid/internal/profile"
	"github.com/gitid-dev/gitid/internal/sshkeys"
	"github.com/gitid-dev/gitid/internal/style"
)

var addCmd = &cobra.Command{
	Use:     "add [name]",
	GroupID: GroupProfiles,
	Short:   "Add a new profile",
	Long: `Add a named identity profile.

Values not given as flags are asked for interactively. When stdin is not a
terminal every required value must be passed as a flag.

The SSH key prompt lists key pairs found in ~/.ssh and can generate a new
ed25519 key for the profile.

Examples:
  gitid add                         # Fully interactive
  gitid add work --user-name "Jane Doe" --email jane@corp.com \
      --platform github --ssh-key ~/.ssh/id_ed25519_work
  gitid add corp --platform gitlab --host gitlab.corp.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addUserName string
	addEmail    string
	addPlatform string
	addSSHKey   string
	addGPGKey   string
	addHost     string
)

const (
	optionGenerateKey = "+ Generate new SSH key"
	optionManualKey   = "+ Enter path manually"
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addUserName, "user-name", "", "Git user name")
	addCmd.Flags().StringVar(&addEmail, "email", "", "Git email")
	addCmd.Flags().StringVar(&addPlatform, "platform", "", "Platform: github, gitlab, or both")
	addCmd.Flags().StringVar(&addSSHKey, "ssh-key", "", "Path to SSH private key")
	addCmd.Flags().StringVar(&addGPGKey, "gpg-key", "", "GPG signing key ID (optional)")
	addCmd.Flags().StringVar(&addHost, "host", "", "Custom host for enterprise instances (optional)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path, err := profile.ConfigPath()
	if err != nil {
		return err
	}
	store, err := profile.Load(path)
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	name, err = askText(name, "profile name", "Profile name (e.g. work, personal, client-acme):", "", profile.ValidateProfileName)
	if err != nil {
		return err
	}
	if err := profile.ValidateProfileName(name); err != nil {
		return err
	}
	if store.Has(name) {
		return fmt.Errorf("%w: '%s'. Use a different name or remove it first", profile.ErrProfileExists, name)
	}

	var p profile.Profile

	if p.Name, err = askText(addUserName, "--user-name", "Git user name:", "", required("user name")); err != nil {
		return err
	}
	if p.Email, err = askText(addEmail, "--email", "Git email:", "", required("email")); err != nil {
		return err
	}
	if p.Platform, err = askPlatform(addPlatform); err != nil {
		return err
	}
	if p.SSHKey, err = askSSHKey(cmd, addSSHKey, name, p.Email); err != nil {
		return err
	}
	if p.GPGKey, err = askOptional(cmd, "gpg-key", addGPGKey, "GPG signing key (optional, Enter to skip):"); err != nil {
		return err
	}
	if p.Host, err = askHost(cmd); err != nil {
		return err
	}

	if err := p.Validate(); err != nil {
		return err
	}

	if _, err := profile.Update(path, func(s *profile.Store) error {
		return s.Add(name, p)
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)
	printSuccess(out, "Added profile '%s'", style.Profile.Render(name))
	_, _ = fmt.Fprintf(out, "Run %s to sync SSH config\n", style.Command.Render("gitid ssh-sync"))
	return nil
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

// askText returns given if set, otherwise prompts. flag names the flag to
// pass when prompting is impossible.
func askText(given, flag, title, def string, validate func(string) error) (string, error) {
	if given != "" {
		return given, nil
	}
	if !deps.interactive() {
		return "", fmt.Errorf("%s is required when not running interactively", flag)
	}
	return deps.prompter.Text(title, def, validate)
}

func askPlatform(given string) (profile.Platform, error) {
	if given != "" {
		return profile.ParsePlatform(given)
	}
	if !deps.interactive() {
		return "", errors.New("--platform is required when not running interactively")
	}

	options := make([]string, len(profile.Platforms))
	for i, pl := range profile.Platforms {
		options[i] = pl.String()
	}
	idx, err := deps.prompter.Select("Platform:", options)
	if err != nil {
		return "", err
	}
	return profile.Platforms[idx], nil
}

// askOptional returns the flag value if the flag was passed, otherwise asks
// when interactive. Non-interactive runs leave the value empty.
func askOptional(cmd *cobra.Command, flag, given, title string) (string, error) {
	if cmd.Flags().Changed(flag) || !deps.interactive() {
		return strings.TrimSpace(given), nil
	}
	v, err := deps.prompter.Text(title, "", nil)
	return strings.TrimSpace(v), err
}

func askHost(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("host") || !deps.interactive() {
		return strings.TrimSpace(addHost), nil
	}
	custom, err := deps.prompter.Confirm("Use a custom host (GitHub Enterprise or self-hosted GitLab)?", false)
	if err != nil || !custom {
		return "", err
	}
	h, err := deps.prompter.Text("Custom host (e.g. github.company.com):", "", nil)
	return strings.TrimSpace(h), err
}

// askSSHKey picks an existing key pair, generates a new one, or takes a path.
func askSSHKey(cmd *cobra.Command, given, profileName, email string) (string, error) {
	if given != "" {
		return given, nil
	}
	if !deps.interactive() {
		return "", errors.New("--ssh-key is required when not running interactively")
	}

	dir, err := sshkeys.Dir()
	if err != nil {
		return "", err
	}
	keys, err := sshkeys.Discover(dir)
	if err != nil {
		return "", err
	}

	options := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		options = append(options, fmt.Sprintf("%s (%s)", k.DisplayPath(), k.Type))
	}
	options = append(options, optionGenerateKey, optionManualKey)

	idx, err := deps.prompter.Select("SSH key:", options)
	if err != nil {
		return "", err
	}

	switch options[idx] {
	case optionGenerateKey:
		return generateKey(cmd, dir, profileName, email)
	case optionManualKey:
		def := fsutil.ContractHome(dir) + "/" + sshkeys.KeyFileName(profileName)
		return deps.prompter.Text("SSH key path:", def, required("SSH key path"))
	default:
		return keys[idx].DisplayPath(), nil
	}
}

func generateKey(cmd *cobra.Command, dir, profileName, email string) (string, error) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Generating new ed25519 SSH key...")

	key, err := sshkeys.Generate(deps.runner, dir, profileName, email)
	if err != nil {
		return "", err
	}
	printSuccess(out, "Generated SSH key: %s", key.DisplayPath())

	pub, err := sshkeys.ReadPublicKey(key)
	if err != nil {
		return "", err
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, style.Warning.Render("Public key (add this to GitHub/GitLab):"))
	_, _ = fmt.Fprintln(out, strings.TrimSpace(pub))
	if key.Fingerprint != "" {
		_, _ = fmt.Fprintln(out, style.Dim.Render(key.Fingerprint))
	}
	_, _ = fmt.Fprintln(out)

	return key.DisplayPath(), nil
}
