package sshconfig

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"

	"github.com/gitid-dev/gitid/internal/fsutil"
	"github.com/gitid-dev/gitid/internal/profile"
)

// AliasStatus reports how the live SSH config resolves one profile alias.
type AliasStatus struct {
	Entry

	// ResolvedHostName and ResolvedIdentity are what ssh would use.
	ResolvedHostName string
	ResolvedIdentity string

	// Problem is empty when the alias resolves as expected.
	Problem string
}

// OK reports whether the alias resolves to the expected host and key.
func (s AliasStatus) OK() bool {
	return s.Problem == ""
}

// Check resolves every alias the store needs against content, an SSH config
// file, the way ssh would (first obtained value wins).
func Check(content string, store *profile.Store) ([]AliasStatus, error) {
	cfg, err := ssh_config.Decode(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing SSH config: %w", err)
	}

	var out []AliasStatus
	for _, a := range StoreEntries(store) {
		st := AliasStatus{Entry: a}

		host, err := cfg.Get(a.Alias, "HostName")
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", a.Alias, err)
		}
		identity, err := cfg.Get(a.Alias, "IdentityFile")
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", a.Alias, err)
		}
		st.ResolvedHostName = host
		st.ResolvedIdentity = identity

		switch {
		case host == "":
			st.Problem = "no Host entry"
		case !strings.EqualFold(host, a.HostName):
			st.Problem = fmt.Sprintf("HostName is %s, want %s", host, a.HostName)
		case !sameKey(identity, a.Identity):
			st.Problem = fmt.Sprintf("IdentityFile is %s, want %s", identity, a.Identity)
		}
		out = append(out, st)
	}
	return out, nil
}

func sameKey(a, b string) bool {
	return filepath.Clean(fsutil.ExpandHome(a)) == filepath.Clean(fsutil.ExpandHome(b))
}
