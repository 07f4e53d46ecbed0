// Package detect picks the profile that best matches a repository's remotes.
package detect

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/gitid-dev/gitid/internal/git"
	"github.com/gitid-dev/gitid/internal/profile"
)

// Score weights. Matches are additive.
const (
	ScoreSSHAlias      = 100
	ScorePlatformAlias = 100
	ScoreDefaultHost   = 50
	ScorePlatform      = 20
	ScoreBothPlatform  = 15
	ScoreCustomHost    = 80
)

// Signals recorded alongside a score.
const (
	SignalSSHAlias      = "ssh-alias"
	SignalPlatformAlias = "platform-alias"
	SignalDefaultHost   = "default-host"
	SignalPlatform      = "platform"
	SignalCustomHost    = "custom-host"
)

// RemoteSource lists the current repository's remotes.
type RemoteSource interface {
	ListRemotes() ([]string, error)
	RemoteURL(name string) (url string, ok bool, err error)
}

// Result is the best match found for a repository.
type Result struct {
	// Profile is the matched profile name.
	Profile string

	// Score is the additive match score, always > 0.
	Score uint

	// Reason is a human-readable explanation of the match.
	Reason string

	// Remote and Host identify the remote that produced the match.
	Remote string
	Host   string

	// Signals lists which rules contributed to Score.
	Signals []string
}

// Detector scores profiles against remotes.
type Detector struct {
	Remotes RemoteSource
	Log     logr.Logger
}

// New returns a detector reading remotes from src.
func New(src RemoteSource, log logr.Logger) *Detector {
	return &Detector{Remotes: src, Log: log}
}

// Detect returns the best-scoring profile across all remotes, or nil when no
// profile scores above zero. Remotes without a URL or with an unrecognized
// URL are skipped.
//
// Ties keep the first maximum seen, scanning remotes in the order the source
// returns them and profiles in name order.
func (d *Detector) Detect(store *profile.Store) (*Result, error) {
	remotes, err := d.Remotes.ListRemotes()
	if err != nil {
		return nil, fmt.Errorf("listing remotes: %w", err)
	}
	if len(remotes) == 0 {
		d.Log.V(1).Info("repository has no remotes")
		return nil, nil
	}

	names := store.Names()

	var best *Result
	for _, remote := range remotes {
		url, ok, err := d.Remotes.RemoteURL(remote)
		if err != nil {
			return nil, fmt.Errorf("reading remote %s: %w", remote, err)
		}
		if !ok {
			d.Log.V(1).Info("skipping remote without URL", "remote", remote)
			continue
		}

		parsed, ok := git.ParseRemoteURL(url)
		if !ok {
			d.Log.V(1).Info("skipping unrecognized remote URL", "remote", remote, "url", url)
			continue
		}

		for _, name := range names {
			p := store.Profiles[name]
			score, signals := Score(parsed.Host, name, p)
			d.Log.V(1).Info("scored profile", "remote", remote, "host", parsed.Host, "profile", name, "score", score, "signals", signals)

			if score == 0 || (best != nil && score <= best.Score) {
				continue
			}
			best = &Result{
				Profile: name,
				Score:   score,
				Reason:  Reason(parsed.Host, p),
				Remote:  remote,
				Host:    parsed.Host,
				Signals: signals,
			}
		}
	}

	return best, nil
}

// Score rates how well profile p (named profileName) matches a remote host.
func Score(host, profileName string, p profile.Profile) (uint, []string) {
	var score uint
	var signals []string

	if host == p.SSHHostAlias(profileName) {
		score += ScoreSSHAlias
		signals = append(signals, SignalSSHAlias)
	}

	for _, alias := range p.PlatformAliases(profileName) {
		if host == alias {
			score += ScorePlatformAlias
			signals = append(signals, SignalPlatformAlias)
			break
		}
	}

	if host == p.DefaultHost() {
		score += ScoreDefaultHost
		signals = append(signals, SignalDefaultHost)
	}

	isGitHub := strings.Contains(host, "github")
	isGitLab := strings.Contains(host, "gitlab")
	switch {
	case p.Platform == profile.PlatformGitHub && isGitHub,
		p.Platform == profile.PlatformGitLab && isGitLab:
		score += ScorePlatform
		signals = append(signals, SignalPlatform)
	case p.Platform == profile.PlatformBoth && (isGitHub || isGitLab):
		score += ScoreBothPlatform
		signals = append(signals, SignalPlatform)
	}

	if p.Host != "" && strings.Contains(host, p.Host) {
		score += ScoreCustomHost
		signals = append(signals, SignalCustomHost)
	}

	return score, signals
}

// Reason explains a match for display. It has no effect on scoring.
func Reason(host string, p profile.Profile) string {
	isGitHubPlatform := p.Platform == profile.PlatformGitHub || p.Platform == profile.PlatformBoth
	isGitLabPlatform := p.Platform == profile.PlatformGitLab || p.Platform == profile.PlatformBoth

	switch {
	case host == p.DefaultHost():
		return fmt.Sprintf("Remote host '%s' matches profile host", host)
	case strings.Contains(host, "github") && isGitHubPlatform:
		return fmt.Sprintf("GitHub repository detected (%s)", host)
	case strings.Contains(host, "gitlab") && isGitLabPlatform:
		return fmt.Sprintf("GitLab repository detected (%s)", host)
	default:
		return fmt.Sprintf("Host '%s' matched", host)
	}
}
