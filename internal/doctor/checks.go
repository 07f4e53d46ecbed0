package doctor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/gitid-dev/gitid/internal/auth"
	"github.com/gitid-dev/gitid/internal/fsutil"
	"github.com/gitid-dev/gitid/internal/sshconfig"
)

// ConfigCheck verifies the profile config loads and validates.
type ConfigCheck struct {
	BaseCheck
}

// NewConfigCheck creates a new config check.
func NewConfigCheck() *ConfigCheck {
	return &ConfigCheck{
		BaseCheck: BaseCheck{
			CheckName:        "config",
			CheckDescription: "Verify the profile config loads and is valid",
		},
	}
}

// Run checks the loaded store.
func (c *ConfigCheck) Run(ctx *CheckContext) *CheckResult {
	if ctx.StoreErr != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "Config could not be loaded",
			Details: []string{ctx.StoreErr.Error()},
			FixHint: "Edit " + fsutil.ContractHome(ctx.ConfigPath) + " and correct the reported field",
		}
	}

	if ctx.Store.Len() == 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "No profiles configured",
			FixHint: "Run 'gitid add' to create a profile",
		}
	}

	res := &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d profile(s) in %s", ctx.Store.Len(), fsutil.ContractHome(ctx.ConfigPath)),
	}
	if ctx.Store.DefaultProfile != "" {
		res.Details = append(res.Details, "Default profile: "+ctx.Store.DefaultProfile)
	}
	return res
}

// SSHKeysCheck verifies every profile's private key exists and is not
// readable by other users.
type SSHKeysCheck struct {
	BaseCheck
}

// NewSSHKeysCheck creates a new SSH keys check.
func NewSSHKeysCheck() *SSHKeysCheck {
	return &SSHKeysCheck{
		BaseCheck: BaseCheck{
			CheckName:        "ssh-keys",
			CheckDescription: "Verify profile SSH keys exist with safe permissions",
		},
	}
}

// Run checks each profile's key file.
func (c *SSHKeysCheck) Run(ctx *CheckContext) *CheckResult {
	if ctx.Store == nil {
		return skipped(c.Name())
	}

	var missing, open []string
	for _, name := range ctx.Store.Names() {
		key := ctx.Store.Profiles[name].SSHKey
		info, err := os.Stat(fsutil.ExpandHome(key))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, fmt.Sprintf("%s: %s not found", name, key))
		case err != nil:
			missing = append(missing, fmt.Sprintf("%s: %s: %v", name, key, err))
		case info.Mode().Perm()&0077 != 0:
			open = append(open, fmt.Sprintf("%s: %s has mode %04o", name, key, info.Mode().Perm()))
		}
	}

	switch {
	case len(missing) > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: fmt.Sprintf("%d SSH key(s) missing", len(missing)),
			Details: append(missing, open...),
			FixHint: "Generate a key with 'gitid add' or point the profile at an existing key",
		}
	case len(open) > 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d SSH key(s) readable by other users", len(open)),
			Details: open,
			FixHint: "Run 'chmod 600' on the listed keys; ssh refuses keys with open permissions",
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: "All profile SSH keys present",
	}
}

// SSHConfigCheck verifies the managed block in the SSH config matches the
// profiles. It can fix a stale or missing block by re-syncing.
type SSHConfigCheck struct {
	FixableCheck
}

// NewSSHConfigCheck creates a new SSH config check.
func NewSSHConfigCheck() *SSHConfigCheck {
	return &SSHConfigCheck{
		FixableCheck: FixableCheck{
			BaseCheck: BaseCheck{
				CheckName:        "ssh-config",
				CheckDescription: "Verify SSH host aliases are in sync with profiles",
			},
		},
	}
}

// Run compares the managed block with a freshly generated one.
func (c *SSHConfigCheck) Run(ctx *CheckContext) *CheckResult {
	if ctx.Store == nil {
		return skipped(c.Name())
	}

	content, err := fsutil.ReadFileOrEmpty(ctx.SSHConfigPath)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "SSH config could not be read",
			Details: []string{err.Error()},
		}
	}

	path := fsutil.ContractHome(ctx.SSHConfigPath)
	want := sshconfig.GenerateManagedBlock(ctx.Store)
	got, ok := sshconfig.ExtractManagedBlock(content)

	switch {
	case !ok && ctx.Store.Len() == 0:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusOK,
			Message: "No profiles, no managed block needed",
		}
	case !ok:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "No gitid managed block in " + path,
			FixHint: "Run 'gitid ssh-sync' or 'gitid doctor --fix'",
		}
	case got != want:
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "Managed block in " + path + " is out of date",
			FixHint: "Run 'gitid ssh-sync' or 'gitid doctor --fix'",
		}
	}

	// The block is current; make sure nothing earlier in the file shadows it.
	statuses, err := sshconfig.Check(content, ctx.Store)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: "Managed block is current but the SSH config could not be parsed",
			Details: []string{err.Error()},
		}
	}
	var problems []string
	for _, st := range statuses {
		if !st.OK() {
			problems = append(problems, st.Alias+": "+st.Problem)
		}
	}
	if len(problems) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d alias(es) overridden by entries outside the managed block", len(problems)),
			Details: problems,
			FixHint: "Move conflicting Host entries below the gitid managed block",
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: fmt.Sprintf("%d host alias(es) in sync", len(statuses)),
	}
}

// Fix re-syncs the managed block.
func (c *SSHConfigCheck) Fix(ctx *CheckContext) error {
	if ctx.Store == nil {
		return errors.New("configuration did not load")
	}
	_, _, err := sshconfig.NewSyncer(ctx.SSHConfigPath, ctx.Log).Sync(ctx.Store)
	return err
}

// ToolsCheck verifies the external tools gitid runs are installed: git
// always, gh and glab when a profile's platform needs them.
type ToolsCheck struct {
	BaseCheck
}

// NewToolsCheck creates a new tools check.
func NewToolsCheck() *ToolsCheck {
	return &ToolsCheck{
		BaseCheck: BaseCheck{
			CheckName:        "tools",
			CheckDescription: "Verify git and platform CLIs are installed",
		},
	}
}

// Run probes each tool with --version.
func (c *ToolsCheck) Run(ctx *CheckContext) *CheckResult {
	if _, err := ctx.Runner.Run("", "git", "--version"); err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusError,
			Message: "git is not installed",
			FixHint: "Install git from https://git-scm.com/",
		}
	}

	needed := map[string]auth.Tool{}
	if ctx.Store != nil {
		for _, name := range ctx.Store.Names() {
			for _, t := range auth.ToolsFor(ctx.Store.Profiles[name].Platform) {
				needed[t.Command] = t
			}
		}
	}

	cmds := make([]string, 0, len(needed))
	for cmd := range needed {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)

	var missing []string
	for _, cmd := range cmds {
		t := needed[cmd]
		if _, err := ctx.Runner.Run("", t.Command, "--version"); err != nil {
			missing = append(missing, fmt.Sprintf("%s: install from %s", t.Label, t.InstallURL))
		}
	}

	if len(missing) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Status:  StatusWarning,
			Message: fmt.Sprintf("%d platform CLI(s) missing; 'gitid auth' will not work for them", len(missing)),
			Details: missing,
		}
	}

	return &CheckResult{
		Name:    c.Name(),
		Status:  StatusOK,
		Message: "git and required platform CLIs installed",
	}
}
