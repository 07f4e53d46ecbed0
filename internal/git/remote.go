package git

import "strings"

// RemoteURL is the part of a git remote URL gitid cares about.
type RemoteURL struct {
	// Host is the hostname or SSH alias, e.g. "github.com" or "github-work".
	Host string
}

// schemes that carry the host in a URL authority.
var schemes = []string{"https://", "http://"}

// ParseRemoteURL extracts the host from an SSH or URL-style remote.
//
//	git@github.com:owner/repo.git       -> github.com
//	git@github-work:owner/repo.git      -> github-work
//	https://github.com/owner/repo.git   -> github.com
//
// Anything else is reported as not parsed.
func ParseRemoteURL(raw string) (RemoteURL, bool) {
	raw = strings.TrimSpace(raw)

	for _, scheme := range schemes {
		if rest, ok := strings.CutPrefix(raw, scheme); ok {
			return parseAuthority(rest)
		}
	}

	// scp-like syntax: user@host:path. The user part cannot contain '/' or
	// ':', so local paths such as /srv/repo@v1:x are rejected.
	at := strings.Index(raw, "@")
	if at < 0 || strings.ContainsAny(raw[:at], "/:") {
		return RemoteURL{}, false
	}
	host, _, ok := strings.Cut(raw[at+1:], ":")
	if !ok || host == "" {
		return RemoteURL{}, false
	}
	return RemoteURL{Host: host}, true
}

// parseAuthority returns the text up to the first '/' verbatim.
func parseAuthority(rest string) (RemoteURL, bool) {
	authority, _, _ := strings.Cut(rest, "/")
	if authority == "" {
		return RemoteURL{}, false
	}
	return RemoteURL{Host: authority}, true
}
