// Package profile defines git identity profiles and the TOML-backed store
// that owns them.
package profile

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Platform is the git hosting platform a profile authenticates against.
type Platform string

const (
	// PlatformGitHub is github.com or a GitHub Enterprise host.
	PlatformGitHub Platform = "github"

	// PlatformGitLab is gitlab.com or a self-hosted GitLab.
	PlatformGitLab Platform = "gitlab"

	// PlatformBoth uses the same identity on GitHub and GitLab.
	PlatformBoth Platform = "both"
)

// Default hosts used when a profile has no custom host.
const (
	GitHubHost = "github.com"
	GitLabHost = "gitlab.com"
)

// Platforms lists the valid platforms in display order.
var Platforms = []Platform{PlatformGitHub, PlatformGitLab, PlatformBoth}

var fold = cases.Fold()

// ParsePlatform parses a platform name case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(fold.String(strings.TrimSpace(s))) {
	case PlatformGitHub:
		return PlatformGitHub, nil
	case PlatformGitLab:
		return PlatformGitLab, nil
	case PlatformBoth:
		return PlatformBoth, nil
	}
	return "", fmt.Errorf("%w: %q, must be 'github', 'gitlab', or 'both'", ErrInvalidPlatform, s)
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformGitHub, PlatformGitLab, PlatformBoth:
		return true
	}
	return false
}

func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the platform as shown to users.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformGitHub:
		return "GitHub"
	case PlatformGitLab:
		return "GitLab"
	case PlatformBoth:
		return "GitHub + GitLab"
	default:
		return string(p)
	}
}

// MarshalText encodes the platform as its lowercase name.
func (p Platform) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlatform, string(p))
	}
	return []byte(p), nil
}

// UnmarshalText decodes a platform name.
func (p *Platform) UnmarshalText(text []byte) error {
	v, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// aliasPrefix is the SSH Host alias prefix for the platform.
func (p Platform) aliasPrefix() string {
	switch p {
	case PlatformGitHub:
		return "github"
	case PlatformGitLab:
		return "gitlab"
	default:
		return "git"
	}
}

// Profile is one git identity.
type Profile struct {
	// Name is the git user.name.
	Name string `toml:"name" json:"name" yaml:"name"`

	// Email is the git user.email.
	Email string `toml:"email" json:"email" yaml:"email"`

	// Platform selects the hosting platform(s).
	Platform Platform `toml:"platform" json:"platform" yaml:"platform"`

	// SSHKey is the private key path, usually with a leading ~.
	SSHKey string `toml:"ssh_key" json:"ssh_key" yaml:"ssh_key"`

	// GPGKey is the optional signing key ID.
	GPGKey string `toml:"gpg_key,omitempty" json:"gpg_key,omitempty" yaml:"gpg_key,omitempty"`

	// Host is an optional custom host for enterprise or self-hosted instances.
	Host string `toml:"host,omitempty" json:"host,omitempty" yaml:"host,omitempty"`
}

// Validate checks the required fields.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if !p.Platform.Valid() {
		return fmt.Errorf("%w: %q, must be 'github', 'gitlab', or 'both'", ErrInvalidPlatform, string(p.Platform))
	}
	if strings.TrimSpace(p.SSHKey) == "" {
		return ErrEmptySSHKey
	}
	return nil
}

// DefaultHost returns the custom host if set, otherwise the platform host.
// Both defaults to github.com.
func (p Profile) DefaultHost() string {
	if p.Host != "" {
		return p.Host
	}
	if p.Platform == PlatformGitLab {
		return GitLabHost
	}
	return GitHubHost
}

// SSHHostAlias returns the SSH Host alias for the profile, e.g. "github-work".
func (p Profile) SSHHostAlias(profileName string) string {
	return p.Platform.aliasPrefix() + "-" + profileName
}

// PlatformAliases returns the extra per-platform aliases a "both" profile
// gets in addition to SSHHostAlias. Other platforms have none.
func (p Profile) PlatformAliases(profileName string) []string {
	if p.Platform != PlatformBoth {
		return nil
	}
	return []string{"github-" + profileName, "gitlab-" + profileName}
}

// HasGPG reports whether commits should be signed.
func (p Profile) HasGPG() bool {
	return p.GPGKey != ""
}
