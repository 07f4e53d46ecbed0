// Package sshconfig renders per-profile Host aliases and keeps them in a
// delimited block of the user's SSH config, leaving everything else alone.
package sshconfig

import (
	"fmt"
	"strings"

	"github.com/gitid-dev/gitid/internal/profile"
)

// Sentinel lines that delimit the managed block. They must match exactly.
const (
	ManagedStart = "# === GITID MANAGED START ==="
	ManagedEnd   = "# === GITID MANAGED END ==="
)

// Entry is one Host stanza that a profile contributes.
type Entry struct {
	Profile  string
	Alias    string
	HostName string
	Identity string
}

// Entries returns the stanzas for one profile in render order. Both profiles
// get github-<name> and gitlab-<name> after their git-<name> alias.
func Entries(profileName string, p profile.Profile) []Entry {
	out := []Entry{{
		Profile:  profileName,
		Alias:    p.SSHHostAlias(profileName),
		HostName: p.DefaultHost(),
		Identity: p.SSHKey,
	}}
	if p.Platform == profile.PlatformBoth {
		out = append(out,
			Entry{Profile: profileName, Alias: "github-" + profileName, HostName: profile.GitHubHost, Identity: p.SSHKey},
			Entry{Profile: profileName, Alias: "gitlab-" + profileName, HostName: profile.GitLabHost, Identity: p.SSHKey},
		)
	}
	return out
}

// StoreEntries returns the stanzas for every profile, sorted by profile name.
func StoreEntries(store *profile.Store) []Entry {
	var out []Entry
	for _, name := range store.Names() {
		out = append(out, Entries(name, store.Profiles[name])...)
	}
	return out
}

func (a Entry) stanza() string {
	return fmt.Sprintf("Host %s\n  HostName %s\n  User git\n  IdentityFile %s\n  IdentitiesOnly yes\n",
		a.Alias, a.HostName, a.Identity)
}

// HostEntry renders the stanzas for one profile. Extra stanzas are each
// preceded by a blank line.
func HostEntry(profileName string, p profile.Profile) string {
	var b strings.Builder
	for i, a := range Entries(profileName, p) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(a.stanza())
	}
	return b.String()
}

// GenerateManagedBlock renders the full managed block for store, profiles in
// name order. The result has no trailing newline after the end sentinel.
func GenerateManagedBlock(store *profile.Store) string {
	var b strings.Builder
	b.WriteString(ManagedStart)
	b.WriteByte('\n')
	for _, name := range store.Names() {
		b.WriteString(HostEntry(name, store.Profiles[name]))
	}
	b.WriteString(ManagedEnd)
	return b.String()
}

// ExtractManagedBlock returns the managed block in content, sentinels
// included, and whether one was found.
func ExtractManagedBlock(content string) (string, bool) {
	start, end, ok := findBlock(content)
	if !ok {
		return "", false
	}
	return content[start:end], true
}

// findBlock locates a managed block: the first end sentinel that has a start
// sentinel before it, paired with the nearest such start. A start sentinel
// with no end after it never captures the content that follows it.
// end is the offset just past the end sentinel.
func findBlock(content string) (start, end int, ok bool) {
	from := 0
	for {
		rel := strings.Index(content[from:], ManagedEnd)
		if rel < 0 {
			return 0, 0, false
		}
		endIdx := from + rel
		if start = strings.LastIndex(content[:endIdx], ManagedStart); start >= 0 {
			return start, endIdx + len(ManagedEnd), true
		}
		from = endIdx + len(ManagedEnd)
	}
}

// Merge installs block into existing. An existing managed block is replaced
// in place and the bytes around it are kept verbatim (replaced is true).
// Otherwise the block is appended after a blank separator line.
func Merge(existing, block string) (merged string, replaced bool) {
	if start, end, ok := findBlock(existing); ok {
		return existing[:start] + block + existing[end:], true
	}

	var b strings.Builder
	b.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(block)
	b.WriteByte('\n')
	return b.String(), false
}
